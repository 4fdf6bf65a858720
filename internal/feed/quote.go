package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"

	"github.com/Bni3259/trading-journal/internal/errors"
)

// QuoteClient fetches batch quotes from a Yahoo-style quote endpoint.
type QuoteClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewQuoteClient creates a quote client against the given base URL.
func NewQuoteClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *QuoteClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &QuoteClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type quoteQuery struct {
	Symbols string `url:"symbols"`
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string  `json:"symbol"`
			RegularMarketPrice float64 `json:"regularMarketPrice"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// LatestPrices fetches quotes for all tickers in a single request. Any
// transport or decoding failure maps to ErrPriceUnavailable.
func (c *QuoteClient) LatestPrices(ctx context.Context, tickers []string) (map[string]float64, error) {
	if len(tickers) == 0 {
		return map[string]float64{}, nil
	}

	params, err := query.Values(quoteQuery{Symbols: strings.Join(tickers, ",")})
	if err != nil {
		return nil, errors.Wrap(err, "building quote query")
	}
	url := c.baseURL + "/v7/finance/quote?" + params.Encode()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building quote request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Quote request failed")
		return nil, errors.Wrapf(errors.ErrPriceUnavailable, "fetching quotes: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("Quote endpoint returned non-200")
		return nil, errors.Wrapf(errors.ErrPriceUnavailable, "quote endpoint returned %d", resp.StatusCode)
	}

	var payload quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrapf(errors.ErrPriceUnavailable, "decoding quotes: %v", err)
	}

	prices := make(map[string]float64, len(payload.QuoteResponse.Result))
	for _, r := range payload.QuoteResponse.Result {
		prices[r.Symbol] = r.RegularMarketPrice
	}

	c.logger.Debug().
		Int("requested", len(tickers)).
		Int("received", len(prices)).
		Dur("duration", time.Since(start)).
		Msg("Quotes fetched")
	return prices, nil
}

// LatestPrice fetches a single quote.
func (c *QuoteClient) LatestPrice(ctx context.Context, ticker string) (float64, error) {
	prices, err := c.LatestPrices(ctx, []string{ticker})
	if err != nil {
		return 0, err
	}
	price, ok := prices[ticker]
	if !ok {
		return 0, errors.Wrapf(errors.ErrPriceUnavailable, "no quote for %s", ticker)
	}
	return price, nil
}
