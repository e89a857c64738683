package report_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nrohr/tables/internal/market"
	"github.com/nrohr/tables/internal/report"
	"github.com/nrohr/tables/internal/returns"
)

func TestRenderInteractive_EmbedsRowData(t *testing.T) {
	t.Parallel()

	out, err := report.RenderInteractive(sampleTable(), report.DefaultInteractiveConfig())
	require.NoError(t, err)
	html := string(out)

	// Raw values drive client-side sorting, the *Text fields display.
	require.Contains(t, html, `"symbol":"AAPL"`)
	require.Contains(t, html, `"date":"2021-01-04"`)
	require.Contains(t, html, `"dateText":"Jan 04, 2021"`)
	require.Contains(t, html, `"volumeText":"1,200,000"`)
	require.Contains(t, html, `"adjCloseText":"$105.00"`)
	require.Contains(t, html, `"returnText":"5.00%"`)
	require.Contains(t, html, `"return":null`)
}

func TestRenderInteractive_DetailSentences(t *testing.T) {
	t.Parallel()

	out, err := report.RenderInteractive(sampleTable(), report.DefaultInteractiveConfig())
	require.NoError(t, err)
	html := string(out)

	require.Contains(t, html, "AAPL closed at $100.00 on Jan 04, 2021 with no prior session to compare.")
	require.Contains(t, html, "AAPL closed at $105.00 on Jan 05, 2021, a daily return of 5.00%.")
	require.Contains(t, html, "AMZN closed at $190.00 on Jan 05, 2021, a daily return of -5.00%.")
}

func TestRenderInteractive_AppliesTheme(t *testing.T) {
	t.Parallel()

	cfg := report.DefaultInteractiveConfig()
	cfg.Theme = report.DarkTheme()

	out, err := report.RenderInteractive(sampleTable(), cfg)
	require.NoError(t, err)
	html := string(out)

	require.Contains(t, html, "--bg:#16181d")
	require.Contains(t, html, "--text:#e4e6eb")
	require.NotContains(t, html, "--bg:#ffffff")
}

func TestRenderInteractive_FeatureToggles(t *testing.T) {
	t.Parallel()

	on, err := report.RenderInteractive(sampleTable(), report.DefaultInteractiveConfig())
	require.NoError(t, err)
	require.Contains(t, string(on), `<table id="table" class="bordered striped highlight">`)
	require.Contains(t, string(on), `<input id="search"`)
	require.Contains(t, string(on), `<tr id="filters"`)
	require.Regexp(t, regexp.MustCompile(`const grouped =\s*true\s*;`), string(on))

	cfg := report.DefaultInteractiveConfig()
	cfg.Bordered = false
	cfg.Striped = false
	cfg.Highlight = false
	cfg.Searchable = false
	cfg.Filterable = false
	cfg.GroupBySymbol = false

	off, err := report.RenderInteractive(sampleTable(), cfg)
	require.NoError(t, err)
	require.Contains(t, string(off), `<table id="table" class="">`)
	require.NotContains(t, string(off), `<input id="search"`)
	require.NotContains(t, string(off), `<tr id="filters"`)
	require.Regexp(t, regexp.MustCompile(`const grouped =\s*false\s*;`), string(off))
}

func TestRenderInteractive_PageSize(t *testing.T) {
	t.Parallel()

	cfg := report.DefaultInteractiveConfig()
	cfg.PageSize = 25

	out, err := report.RenderInteractive(sampleTable(), cfg)
	require.NoError(t, err)

	require.Regexp(t, regexp.MustCompile(`const pageSize =\s*25\s*;`), string(out))
}

func TestRenderInteractive_FootersRendered(t *testing.T) {
	t.Parallel()

	out, err := report.RenderInteractive(sampleTable(), report.DefaultInteractiveConfig())
	require.NoError(t, err)
	html := string(out)

	// Volume sums to an integer, other numeric columns get sparklines.
	require.Contains(t, html, "<td>9,211,400</td>")
	require.Contains(t, html, `<svg class="sparkline"`)
}

func TestRenderInteractive_Deterministic(t *testing.T) {
	t.Parallel()

	table := sampleTable()
	cfg := report.DefaultInteractiveConfig()

	first, err := report.RenderInteractive(table, cfg)
	require.NoError(t, err)
	second, err := report.RenderInteractive(table, cfg)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestRenderInteractive_DoesNotModifyTable(t *testing.T) {
	t.Parallel()

	table := sampleTable()
	before := make([]returns.Record, len(table.Rows))
	copy(before, table.Rows)

	_, err := report.RenderInteractive(table, report.DefaultInteractiveConfig())
	require.NoError(t, err)

	require.Equal(t, before, table.Rows)
}

func TestFooterCells_OnlyNumericColumns(t *testing.T) {
	t.Parallel()

	footers := report.FooterCells(sampleTable())

	require.NotContains(t, footers, "symbol")
	require.NotContains(t, footers, "date")
	for _, key := range []string{"open", "high", "low", "close", "adjClose", "return"} {
		require.Contains(t, footers, key)
		require.Contains(t, string(footers[key]), "<svg", "footer %s", key)
	}
	require.Equal(t, "9,211,400", string(footers["volume"]))
}

func TestFooterCells_FlatColumnStillGetsSparkline(t *testing.T) {
	t.Parallel()

	table := returns.NewTable(returns.Compute([]market.PriceRecord{
		{Symbol: "AAPL", Date: day(4), Open: 100, High: 100, Low: 100, Close: 100, Volume: 10, AdjClose: 100},
		{Symbol: "AAPL", Date: day(5), Open: 100, High: 100, Low: 100, Close: 100, Volume: 10, AdjClose: 100},
	}))

	footers := report.FooterCells(table)
	require.Contains(t, string(footers["close"]), "<svg")
	require.Equal(t, "20", string(footers["volume"]))
}

func TestFooterCells_EmptyTable(t *testing.T) {
	t.Parallel()

	require.Empty(t, report.FooterCells(returns.Table{}))
}

func TestDetailSentence(t *testing.T) {
	t.Parallel()

	ret := 0.0213
	withReturn := returns.Record{
		PriceRecord: market.PriceRecord{Symbol: "NFLX", Date: day(15), AdjClose: 510.4},
		Return:      &ret,
	}
	require.Equal(t,
		"NFLX closed at $510.40 on Jan 15, 2021, a daily return of 2.13%.",
		report.DetailSentence(withReturn, "", ""))

	firstSession := returns.Record{
		PriceRecord: market.PriceRecord{Symbol: "NFLX", Date: day(4), AdjClose: 500},
	}
	require.Equal(t,
		"NFLX closed at $500.00 on Jan 04, 2021 with no prior session to compare.",
		report.DetailSentence(firstSession, "", ""))
}
