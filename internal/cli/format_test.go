package cli

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	cases := map[float64]string{
		0:          "$0.00",
		1:          "$1.00",
		150:        "$150.00",
		1234.5:     "$1,234.50",
		1234567.89: "$1,234,567.89",
		-42.5:      "-$42.50",
	}
	for amount, want := range cases {
		assert.Equal(t, want, FormatUSD(amount))
	}
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "10", FormatQuantity(10))
	assert.Equal(t, "2.5", FormatQuantity(2.5))
	assert.Equal(t, "0.25", FormatQuantity(0.25))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "a long ...", TruncateString("a long conclusion", 10))
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2026, 8, 3, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-03", FormatDate(ts))
	assert.Equal(t, "10:30", FormatTime(ts))
}

// Property: thousands grouping never changes the digits, only inserts commas.
func TestProperty_GroupThousandsPreservesDigits(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("removing commas and sign restores the plain amount", prop.ForAll(
		func(n int64) bool {
			formatted := FormatUSD(float64(n))
			plain := strings.NewReplacer(",", "", "$", "").Replace(formatted)
			return plain == fmt.Sprintf("%.2f", float64(n))
		},
		gen.Int64Range(0, 1_000_000_000),
	))

	properties.TestingRun(t)
}
