package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Trade Journal Configuration
#
# JOURNAL_API_URL, JOURNAL_BASELINE_CAPITAL and JOURNAL_LOG_LEVEL override
# this file. They may also be set in a .env file next to it.

[api]
# Base URL of the journal backend (trades/ and transfers/ live under it)
base_url = "http://localhost:8000/api"
# Per-request timeout
timeout = "15s"
# Retries for read requests on network errors and 5xx responses
max_retries = 3
# Client-side request rate limit (requests per second, 0 = unlimited)
rate_limit = 5.0
# How long a fetched trade list is reused
cache_ttl = "30s"
# Consecutive network or 5xx failures before requests fail fast
breaker_threshold = 5
# How long requests fail fast before the backend is tried again
breaker_cooldown = "30s"

[capital]
# Starting capital in INR. When 0, net transfers from the backend are used.
baseline = "0"

[ui]
# Enable colored output
color_enabled = true
# Trades per page in list views
page_size = 10

[log]
# Log level: debug, info, warn, error
level = "info"
# Also log to stderr
console = false

[store]
# Keep a local snapshot of the last fetched trade list
enabled = true
`

// createTemplateConfig writes the config template. Loading then proceeds with
// defaults.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}
