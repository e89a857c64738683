package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nrohr/tables/internal/config"
	"github.com/nrohr/tables/internal/market"
	"github.com/nrohr/tables/internal/returns"
)

func TestResolveSymbols_InlineList(t *testing.T) {
	t.Parallel()

	symbols, err := resolveSymbols(config.DataConfig{Symbols: []string{"AMZN", "AAPL"}})
	require.NoError(t, err)
	require.Equal(t, []string{"AMZN", "AAPL"}, symbols)
}

func TestResolveSymbols_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "symbols.txt")
	require.NoError(t, os.WriteFile(path, []byte("AMZN\n\n# streaming\nNFLX \nAAPL\n"), 0644))

	symbols, err := resolveSymbols(config.DataConfig{
		Symbols:    []string{"IGNORED"},
		SymbolFile: path,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"AMZN", "NFLX", "AAPL"}, symbols, "file wins over the inline list; blanks and comments dropped")
}

func TestResolveSymbols_EmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "symbols.txt")
	require.NoError(t, os.WriteFile(path, []byte("# nothing here\n"), 0644))

	_, err := resolveSymbols(config.DataConfig{SymbolFile: path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "contains no symbols")
}

func TestResolveSymbols_NothingConfigured(t *testing.T) {
	t.Parallel()

	_, err := resolveSymbols(config.DataConfig{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no symbols specified")
}

func TestBuildSource(t *testing.T) {
	t.Parallel()

	src, err := buildSource(config.Config{Data: config.DataConfig{Source: "yahoo"}})
	require.NoError(t, err)
	require.Equal(t, "yahoo", src.Name())

	src, err = buildSource(config.Config{})
	require.NoError(t, err)
	require.Equal(t, "yahoo", src.Name(), "yahoo is the default source")

	_, err = buildSource(config.Config{Data: config.DataConfig{Source: "kite"}})
	require.Error(t, err, "kite requires credentials")

	_, err = buildSource(config.Config{Data: config.DataConfig{Source: "bloomberg"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown source")
}

func TestBuildTable_RejectsBadDates(t *testing.T) {
	t.Parallel()

	base := config.Config{Data: config.DataConfig{
		Symbols:     []string{"AAPL"},
		From:        "2021-01-01",
		WindowStart: "2021-01-11",
		WindowEnd:   "2021-01-15",
	}}

	cfg := base
	cfg.Data.From = "January 1st"
	_, err := buildTable(context.Background(), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid from date")

	cfg = base
	cfg.Data.WindowEnd = "2021-01-05"
	_, err = buildTable(context.Background(), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "before window start")
}

func TestBuildTable_EndToEnd(t *testing.T) {
	t.Parallel()

	// Jan 4 to 6, each day up exactly 5%.
	body := `{"chart":{"result":[{"timestamp":[1609718400,1609804800,1609891200],
		"indicators":{"quote":[{"open":[100,105,110],"high":[101,106,111],"low":[99,104,109],
		"close":[100,105,110.25],"volume":[1000,2000,3000]}],
		"adjclose":[{"adjclose":[100,105,110.25]}]}}],"error":null}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	cfg := config.Config{
		Data: config.DataConfig{
			Symbols:     []string{"AAPL", "AMZN"},
			Source:      "yahoo",
			From:        "2021-01-01",
			WindowStart: "2021-01-05",
			WindowEnd:   "2021-01-06",
		},
		Fetch: config.FetchConfig{BaseURL: server.URL, MaxRetries: 1},
	}

	table, err := buildTable(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, table.Rows, 4)
	require.Equal(t, "AAPL", table.Rows[0].Symbol)
	require.Equal(t, "AMZN", table.Rows[1].Symbol)
	require.Equal(t, 5, table.Rows[0].Date.Day())
	require.Equal(t, 6, table.Rows[2].Date.Day())
	for i, row := range table.Rows {
		require.NotNil(t, row.Return, "row %d", i)
		require.InDelta(t, 0.05, *row.Return, 1e-12)
	}
}

func TestBuildTable_EmptyWindow(t *testing.T) {
	t.Parallel()

	body := `{"chart":{"result":[{"timestamp":[1609718400],
		"indicators":{"quote":[{"open":[100],"high":[101],"low":[99],"close":[100],"volume":[1000]}],
		"adjclose":[{"adjclose":[100]}]}}],"error":null}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	cfg := config.Config{
		Data: config.DataConfig{
			Symbols:     []string{"AAPL"},
			From:        "2021-01-01",
			WindowStart: "2021-03-01",
			WindowEnd:   "2021-03-05",
		},
		Fetch: config.FetchConfig{BaseURL: server.URL, MaxRetries: 1},
	}

	_, err := buildTable(context.Background(), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no rows between")
}

func TestRenderArtifacts_WritesBothDocuments(t *testing.T) {
	t.Parallel()

	outputDir := filepath.Join(t.TempDir(), "output")
	cfg := config.Config{
		Data:   config.DataConfig{Source: "yahoo"},
		Report: config.ReportConfig{OutputDir: outputDir},
	}

	table := sampleReturnTable()
	require.NoError(t, renderArtifacts(cfg, table))

	static, err := os.ReadFile(filepath.Join(outputDir, "stocks.html"))
	require.NoError(t, err)
	require.Contains(t, string(static), "Daily Stock Returns")
	require.Contains(t, string(static), "Source: Yahoo Finance")

	interactive, err := os.ReadFile(filepath.Join(outputDir, "stocks_interactive.html"))
	require.NoError(t, err)
	require.Contains(t, string(interactive), "const rows =")
	require.Contains(t, string(interactive), "Source: Yahoo Finance")
}

func TestRenderArtifacts_RejectsUnknownTheme(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Report: config.ReportConfig{
			OutputDir: t.TempDir(),
			Theme:     "neon",
		},
	}

	err := renderArtifacts(cfg, sampleReturnTable())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown theme")
}

func TestDefaultSourceNote(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Source: Kite Connect historical API", defaultSourceNote("kite"))
	require.Equal(t, "Source: Yahoo Finance", defaultSourceNote("yahoo"))
	require.Equal(t, "Source: Yahoo Finance", defaultSourceNote(""))
}

func sampleReturnTable() returns.Table {
	ret := 0.0213
	day4 := time.Date(2021, time.January, 4, 0, 0, 0, 0, time.UTC)
	day5 := time.Date(2021, time.January, 5, 0, 0, 0, 0, time.UTC)
	return returns.NewTable([]returns.Record{
		{PriceRecord: market.PriceRecord{Symbol: "AAPL", Date: day4, Open: 99, High: 101, Low: 98, Close: 100, Volume: 1000, AdjClose: 100}},
		{PriceRecord: market.PriceRecord{Symbol: "AAPL", Date: day5, Open: 100, High: 103, Low: 100, Close: 102.13, Volume: 1200, AdjClose: 102.13}, Return: &ret},
	})
}
