package report

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/nrohr/tables/internal/returns"
)

//go:embed interactive.html
var interactiveTemplate string

// DefaultPageSize is the interactive table's rows-per-page default
const DefaultPageSize = 10

// InteractiveConfig controls the interactive table document
type InteractiveConfig struct {
	Title          string
	DateLayout     string
	CurrencySymbol string
	SourceNote     string
	PageSize       int
	GroupBySymbol  bool
	Sortable       bool
	Resizable      bool
	Bordered       bool
	Striped        bool
	Highlight      bool
	Filterable     bool
	Searchable     bool
	Theme          Theme
}

// DefaultInteractiveConfig returns the standard interactive configuration:
// grouped by symbol with all browsing affordances enabled, light theme
func DefaultInteractiveConfig() InteractiveConfig {
	return InteractiveConfig{
		PageSize:      DefaultPageSize,
		GroupBySymbol: true,
		Sortable:      true,
		Resizable:     true,
		Bordered:      true,
		Striped:       true,
		Highlight:     true,
		Filterable:    true,
		Searchable:    true,
		Theme:         LightTheme(),
	}
}

// interactiveRow is the per-row payload embedded in the document. Numeric
// fields drive client-side sorting; the *Text fields are the pre-formatted
// display values.
type interactiveRow struct {
	Symbol       string   `json:"symbol"`
	Date         string   `json:"date"`
	DateText     string   `json:"dateText"`
	Open         float64  `json:"open"`
	High         float64  `json:"high"`
	Low          float64  `json:"low"`
	Close        float64  `json:"close"`
	Volume       int64    `json:"volume"`
	AdjClose     float64  `json:"adjClose"`
	Return       *float64 `json:"return"`
	OpenText     string   `json:"openText"`
	HighText     string   `json:"highText"`
	LowText      string   `json:"lowText"`
	CloseText    string   `json:"closeText"`
	VolumeText   string   `json:"volumeText"`
	AdjCloseText string   `json:"adjCloseText"`
	ReturnText   string   `json:"returnText"`
	Detail       string   `json:"detail"`
}

// interactiveDocument is the template context for the interactive artifact
type interactiveDocument struct {
	Title         string
	Subtitle      string
	SourceNote    string
	PageSize      int
	GroupBySymbol bool
	Sortable      bool
	Resizable     bool
	Bordered      bool
	Striped       bool
	Highlight     bool
	Filterable    bool
	Searchable    bool
	Theme         Theme
	RowsJSON      template.JS
	Footers       map[string]template.HTML
}

// RenderInteractive renders the table into a self-contained HTML document
// whose embedded script owns all view state (sorting, filters, search,
// pagination, expanded rows). The table itself is not modified.
func RenderInteractive(table returns.Table, cfg InteractiveConfig) ([]byte, error) {
	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}
	if cfg.DateLayout == "" {
		cfg.DateLayout = DefaultDateLayout
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = DefaultCurrencySymbol
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Theme.Name == "" {
		cfg.Theme = LightTheme()
	}

	rows := make([]interactiveRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		ir := interactiveRow{
			Symbol:       row.Symbol,
			Date:         row.Date.Format("2006-01-02"),
			DateText:     row.Date.Format(cfg.DateLayout),
			Open:         row.Open,
			High:         row.High,
			Low:          row.Low,
			Close:        row.Close,
			Volume:       row.Volume,
			AdjClose:     row.AdjClose,
			Return:       row.Return,
			OpenText:     Number(row.Open),
			HighText:     Number(row.High),
			LowText:      Number(row.Low),
			CloseText:    Number(row.Close),
			VolumeText:   Comma(row.Volume),
			AdjCloseText: Currency(cfg.CurrencySymbol, row.AdjClose),
			ReturnText:   "-",
			Detail:       DetailSentence(row, cfg.DateLayout, cfg.CurrencySymbol),
		}
		if row.Return != nil {
			ir.ReturnText = Percent(*row.Return)
		}
		rows = append(rows, ir)
	}

	rowsJSON, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rows: %w", err)
	}

	doc := interactiveDocument{
		Title:         cfg.Title,
		Subtitle:      Subtitle(table, cfg.DateLayout),
		SourceNote:    cfg.SourceNote,
		PageSize:      cfg.PageSize,
		GroupBySymbol: cfg.GroupBySymbol,
		Sortable:      cfg.Sortable,
		Resizable:     cfg.Resizable,
		Bordered:      cfg.Bordered,
		Striped:       cfg.Striped,
		Highlight:     cfg.Highlight,
		Filterable:    cfg.Filterable,
		Searchable:    cfg.Searchable,
		Theme:         cfg.Theme,
		RowsJSON:      template.JS(rowsJSON),
		Footers:       FooterCells(table),
	}

	tmpl, err := template.New("interactive").Parse(interactiveTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse interactive template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to render interactive table: %w", err)
	}
	return buf.Bytes(), nil
}

// FooterCells computes the per-column footer content. Only numeric columns
// produce a footer: volume shows its integer-formatted sum across the whole
// table, the remaining numeric columns show a sparkline over the column's
// values in table order. Symbol and date have no entry.
func FooterCells(table returns.Table) map[string]template.HTML {
	footers := make(map[string]template.HTML)
	if len(table.Rows) == 0 {
		return footers
	}

	var open, high, low, closes, adj, rets []float64
	var volumeSum int64
	for _, row := range table.Rows {
		open = append(open, row.Open)
		high = append(high, row.High)
		low = append(low, row.Low)
		closes = append(closes, row.Close)
		adj = append(adj, row.AdjClose)
		volumeSum += row.Volume
		if row.Return != nil {
			rets = append(rets, *row.Return)
		}
	}

	footers["open"] = Sparkline(open)
	footers["high"] = Sparkline(high)
	footers["low"] = Sparkline(low)
	footers["close"] = Sparkline(closes)
	footers["volume"] = template.HTML(Comma(volumeSum))
	footers["adjClose"] = Sparkline(adj)
	footers["return"] = Sparkline(rets)
	return footers
}

// DetailSentence builds the expandable description shown under a row
func DetailSentence(row returns.Record, dateLayout, currencySymbol string) string {
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	if currencySymbol == "" {
		currencySymbol = DefaultCurrencySymbol
	}
	date := row.Date.Format(dateLayout)
	if row.Return == nil {
		return fmt.Sprintf("%s closed at %s%.2f on %s with no prior session to compare.",
			row.Symbol, currencySymbol, row.AdjClose, date)
	}
	return fmt.Sprintf("%s closed at %s%.2f on %s, a daily return of %.2f%%.",
		row.Symbol, currencySymbol, row.AdjClose, date, *row.Return*100)
}
