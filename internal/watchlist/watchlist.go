// Package watchlist loads the newline-delimited symbol list the
// screener runs against.
package watchlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads symbols from path, one per line. Blank lines and lines
// starting with # are skipped; symbols are uppercased and de-duplicated
// preserving first-seen order.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading symbol file: %w", err)
	}
	defer f.Close()

	var symbols []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, token := range strings.Fields(line) {
			symbol := strings.ToUpper(token)
			if _, ok := seen[symbol]; ok {
				continue
			}
			seen[symbol] = struct{}{}
			symbols = append(symbols, symbol)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading symbol file: %w", err)
	}
	return symbols, nil
}
