// Package report renders surviving contracts into the CSV screening
// report. Every row re-derives its profit figures through the same
// pure functions the filter stage used, so the two always agree.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"

	"ccscreen/internal/models"
	"ccscreen/internal/screener"
	"ccscreen/pkg/utils"
)

// FilenamePattern is the fixed template for the report file; the
// argument is a run timestamp.
const FilenamePattern = "call_options.%s.csv"

// Row is one rendered report line. Fields are preformatted: prices and
// gains carry a $ prefix, percentages a literal % suffix, all numerics
// two decimal places.
type Row struct {
	Symbol        string `csv:"symbol"`
	Price         string `csv:"price"`
	PERatio       string `csv:"p/e ratio"`
	Yield         string `csv:"yield"`
	ExDivDate     string `csv:"ex-div date"`
	ExpireDate    string `csv:"expire date"`
	Strike        string `csv:"strike"`
	Bid           string `csv:"bid"`
	Ask           string `csv:"ask"`
	SafetyMargin  string `csv:"safety margin"`
	ProfitDollars string `csv:"profit$"`
	ProfitPercent string `csv:"profit%"`
	DivProfitPrct string `csv:"div-adj profit%"`
	ProfitPerDay  string `csv:"profit/day"`
	MaxProfitNet  string `csv:"max-profit safety net"`
}

// Builder renders screening results. The environment decides how a
// symbol-cache miss is handled at report time: sandbox substitutes a
// synthetic price, live skips the row with an error log.
type Builder struct {
	cfg    screener.Thresholds
	logger zerolog.Logger
}

// NewBuilder creates a report builder for one run's thresholds.
func NewBuilder(cfg screener.Thresholds, logger zerolog.Logger) *Builder {
	return &Builder{cfg: cfg, logger: logger}
}

// Build computes one row per keeper, header order preserved from the
// keepers list.
func (b *Builder) Build(result *screener.Result) []Row {
	rows := make([]Row, 0, len(result.Keepers))
	for _, contract := range result.Keepers {
		quote, ok := result.Quotes[contract.Symbol]
		if !ok {
			if b.cfg.Environment == models.EnvLive {
				b.logger.Error().Str("symbol", contract.Symbol).Msg("symbol missing from ticker map, skipping row")
				continue
			}
			// Sandbox data can produce keepers whose quote never made
			// it into the cache; substitute a placeholder price so the
			// row still renders.
			quote = models.StockQuote{Symbol: contract.Symbol, Price: contract.Strike - 2.0}
		}

		p := screener.ProjectAtPrice(quote, quote.Price, contract, result.Now, b.cfg)
		rows = append(rows, Row{
			Symbol:        contract.Symbol,
			Price:         utils.FormatDollars(quote.Price),
			PERatio:       fmt.Sprintf("%.2f", quote.PE()),
			Yield:         utils.FormatPercent(quote.Yield()),
			ExDivDate:     quote.ExDividendDateString(),
			ExpireDate:    contract.ExpirationString(),
			Strike:        fmt.Sprintf("%.2f", contract.Strike),
			Bid:           fmt.Sprintf("%.2f", contract.Bid),
			Ask:           fmt.Sprintf("%.2f", contract.Ask),
			SafetyMargin:  utils.FormatPercent(p.SafetyMargin),
			ProfitDollars: utils.FormatDollars(p.ProfitDollars),
			ProfitPercent: utils.FormatPercent(p.ProfitPercent),
			DivProfitPrct: utils.FormatPercent(p.DivProfitPercent),
			ProfitPerDay:  fmt.Sprintf("%.2f", p.ProfitPerDay),
			MaxProfitNet:  utils.FormatPercent(p.MaxProfitNet),
		})
	}
	return rows
}

// Header returns the CSV header line. The profit columns name the
// projected move they assume.
func (b *Builder) Header() string {
	return fmt.Sprintf(
		"symbol,price,p/e ratio,yield,ex-div date,expire date,strike,bid,ask,safety margin,"+
			"profit$ (on %g%% gain),profit%% (on %g%% gain),div-adj profit%%,profit/day,max-profit safety net",
		b.cfg.ProjectedMove, b.cfg.ProjectedMove,
	)
}

// Write emits the header plus one CSV line per row to w.
func (b *Builder) Write(w io.Writer, rows []Row) error {
	if _, err := fmt.Fprintln(w, b.Header()); err != nil {
		return err
	}
	// Rows go through the CSV encoder; the header is written above so
	// the profit columns can carry the configured projected move.
	return gocsv.MarshalWithoutHeaders(&rows, w)
}

// WriteFile renders the report into dir under FilenamePattern, stamped
// with the given run time, and returns the path written.
func (b *Builder) WriteFile(dir string, runTime time.Time, rows []Row) (string, error) {
	name := fmt.Sprintf(FilenamePattern, runTime.Format("2006-01-02-15-04"))
	path := filepath.Join(dir, name)

	var sb strings.Builder
	if err := b.Write(&sb, rows); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}
