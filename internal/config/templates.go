package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Trade Journal Configuration

[journal]
# Reporting base currency for all aggregate statistics
base_currency = "USD"

# Conversion rates into the base currency, used only for trades recorded
# without a close-time base conversion. Unknown codes convert at 1.
[journal.rates]
# EUR = 1.09
# GBP = 1.27
# INR = 0.012

[analytics]
# Consecutive losses that trigger the tilt alert
streak_threshold = 3
# Same-day cumulative R loss that triggers the daily-limit alert
daily_loss_limit_r = 3.0
# Base-currency scale of the setup-score drawdown penalty
drawdown_unit = 1000.0

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "2006-01-02"
`

// createTemplateConfig writes a commented config template so a fresh
// install has something to edit.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}
