package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nrohr/tables/internal/config"
	"github.com/nrohr/tables/internal/market"
	"github.com/nrohr/tables/internal/report"
	"github.com/nrohr/tables/internal/returns"
)

const dateLayout = "2006-01-02"

// buildTable runs the full data pipeline and returns the windowed table:
// resolve symbols, fetch daily candles per symbol, compute daily returns,
// then keep only the rows inside the configured date window.
func buildTable(ctx context.Context, cfg config.Config) (returns.Table, error) {
	symbols, err := resolveSymbols(cfg.Data)
	if err != nil {
		return returns.Table{}, err
	}

	from, err := time.Parse(dateLayout, cfg.Data.From)
	if err != nil {
		return returns.Table{}, fmt.Errorf("invalid from date %q: %w", cfg.Data.From, err)
	}
	start, err := time.Parse(dateLayout, cfg.Data.WindowStart)
	if err != nil {
		return returns.Table{}, fmt.Errorf("invalid window start %q: %w", cfg.Data.WindowStart, err)
	}
	end, err := time.Parse(dateLayout, cfg.Data.WindowEnd)
	if err != nil {
		return returns.Table{}, fmt.Errorf("invalid window end %q: %w", cfg.Data.WindowEnd, err)
	}
	if end.Before(start) {
		return returns.Table{}, fmt.Errorf("window end %s is before window start %s", cfg.Data.WindowEnd, cfg.Data.WindowStart)
	}

	src, err := buildSource(cfg)
	if err != nil {
		return returns.Table{}, err
	}

	fetcher := market.NewFetcher(src,
		time.Duration(cfg.Fetch.RequestDelay)*time.Millisecond,
		cfg.Fetch.MaxRetries)
	records, err := fetcher.FetchAll(ctx, symbols, from)
	if err != nil {
		return returns.Table{}, err
	}

	table := returns.NewTable(returns.Compute(records)).Window(start, end)
	if len(table.Rows) == 0 {
		return returns.Table{}, fmt.Errorf("no rows between %s and %s; widen the window or move the from date earlier",
			cfg.Data.WindowStart, cfg.Data.WindowEnd)
	}
	log.Printf("Table has %d rows across %d symbols", len(table.Rows), len(table.Symbols()))

	return table, nil
}

// buildSource constructs the configured price source
func buildSource(cfg config.Config) (market.Source, error) {
	switch cfg.Data.Source {
	case "", "yahoo":
		opts := []market.YahooOption{
			market.WithYahooTimeout(time.Duration(cfg.Fetch.TimeoutSecs) * time.Second),
		}
		if cfg.Fetch.BaseURL != "" {
			opts = append(opts, market.WithYahooBaseURL(cfg.Fetch.BaseURL))
		}
		return market.NewYahooSource(opts...), nil
	case "kite":
		return market.NewKiteSource(market.KiteConfig{
			ApiKey:            cfg.Kite.ApiKey,
			AccessToken:       cfg.Kite.AccessToken,
			InstrumentsNSEURL: cfg.Kite.InstrumentsNSEURL,
		})
	default:
		return nil, fmt.Errorf("unknown source: %s (available: yahoo, kite)", cfg.Data.Source)
	}
}

// resolveSymbols determines the symbol list for this run. A symbol file
// takes precedence over the inline list; blank lines and # comments in
// the file are ignored.
func resolveSymbols(cfg config.DataConfig) ([]string, error) {
	if cfg.SymbolFile != "" {
		content, err := os.ReadFile(cfg.SymbolFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read symbol file: %w", err)
		}
		var symbols []string
		for _, line := range strings.Split(string(content), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			symbols = append(symbols, line)
		}
		if len(symbols) == 0 {
			return nil, fmt.Errorf("symbol file %s contains no symbols", cfg.SymbolFile)
		}
		return symbols, nil
	}
	if len(cfg.Symbols) == 0 {
		return nil, fmt.Errorf("no symbols specified; use --symbols, --symbol-file, or the config file")
	}
	return cfg.Symbols, nil
}

// renderArtifacts renders the table through both renderers and writes the
// documents to the output directory.
func renderArtifacts(cfg config.Config, table returns.Table) error {
	if err := os.MkdirAll(cfg.Report.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	sourceNote := cfg.Report.SourceNote
	if sourceNote == "" {
		sourceNote = defaultSourceNote(cfg.Data.Source)
	}

	staticHTML, err := report.RenderStatic(table, report.StaticConfig{
		Title:          cfg.Report.Title,
		DateLayout:     cfg.Report.DateLayout,
		CurrencySymbol: cfg.Report.Currency,
		SourceNote:     sourceNote,
	})
	if err != nil {
		return fmt.Errorf("failed to render static table: %w", err)
	}
	staticPath := filepath.Join(cfg.Report.OutputDir, "stocks.html")
	if err := os.WriteFile(staticPath, staticHTML, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", staticPath, err)
	}
	log.Printf("Rendered static table to %s", staticPath)

	theme, err := report.ThemeByName(cfg.Report.Theme)
	if err != nil {
		return err
	}
	icfg := report.DefaultInteractiveConfig()
	icfg.Title = cfg.Report.Title
	icfg.DateLayout = cfg.Report.DateLayout
	icfg.CurrencySymbol = cfg.Report.Currency
	icfg.SourceNote = sourceNote
	icfg.Theme = theme
	if cfg.Report.PageSize > 0 {
		icfg.PageSize = cfg.Report.PageSize
	}
	interactiveHTML, err := report.RenderInteractive(table, icfg)
	if err != nil {
		return fmt.Errorf("failed to render interactive table: %w", err)
	}
	interactivePath := filepath.Join(cfg.Report.OutputDir, "stocks_interactive.html")
	if err := os.WriteFile(interactivePath, interactiveHTML, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", interactivePath, err)
	}
	log.Printf("Rendered interactive table to %s", interactivePath)

	return nil
}

// defaultSourceNote is used when the config does not set one
func defaultSourceNote(source string) string {
	if source == "kite" {
		return "Source: Kite Connect historical API"
	}
	return "Source: Yahoo Finance"
}
