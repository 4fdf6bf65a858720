package config

import (
	"os"
	"path/filepath"
)

const configTemplate = `# Trading Journal Configuration

[storage]
# Persistence backend: "csv" (flat file) or "sqlite"
backend = "csv"
# Path to the journal file or database
# path = "~/.config/trading-journal/journal.csv"

[feed]
# Quote endpoint base URL
base_url = "https://query1.finance.yahoo.com"
# Request timeout
timeout = "10s"

[server]
# HTTP API listen address
addr = "127.0.0.1:8090"
read_timeout = "10s"
write_timeout = "10s"

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "2006-01-02"
# Time format
time_format = "15:04"

[logging]
# Log level: debug, info, warn, error
level = "info"
console = true
file = true
`

// createTemplateConfig writes a commented config template so defaults are
// discoverable on first run.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}
