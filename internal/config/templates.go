package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Covered-Call Screener Configuration

[screen]
# Environment: "live" or "sandbox". Sandbox relaxes the minimum-days
# expiration check because sandbox endpoints serve static dates.
environment = "live"
# Newline-delimited symbol list (required for the screen command)
symbol_file = ""
# Directory the CSV report is written into
output_dir = "."
# Minimum underlying share price
min_stock_price = 10.0
# Maximum option ask price
max_ask = 4.0
# max_ask * stock_price_factor caps the underlying's price
stock_price_factor = 50.0
# Minimum dividend yield (%)
min_yield = 1.0
# Maximum P/E ratio (0 disables the P/E filter)
max_pe = 30.0
# Expiration window in days
min_days = 14
max_days = 60
# Minimum safety margin (%)
safety_margin = 3.0
# Assumed underlying move (%) used for the price target
projected_move = 1.0
# Minimum projected gain (% / $)
min_gain_prct = 10.0
min_gain = 30.0
# Option delta approximation for the projected value
delta = 0.75
# Flat per-contract commission ($)
commission = 5.45

[data]
# SQLite snapshot store holding previously fetched market data
# db_path = "~/.config/ccscreen/snapshots.db"

[log]
level = "info"
console = true
file = true
# file_path = "~/.config/ccscreen/logs/ccscreen.log"
`

// createTemplateConfig writes a starter config.toml so a first run
// leaves something editable behind.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Created template config: %s\n", path)
	return nil
}
