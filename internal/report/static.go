package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/nrohr/tables/internal/returns"
)

//go:embed static.html
var staticTemplate string

const (
	// DefaultDateLayout is the date style used in rendered tables
	DefaultDateLayout = "Jan 02, 2006"

	// DefaultCurrencySymbol prefixes adjusted close values
	DefaultCurrencySymbol = "$"

	defaultTitle = "Daily Stock Returns"
)

// StaticConfig controls the static table document
type StaticConfig struct {
	Title          string
	DateLayout     string
	CurrencySymbol string
	SourceNote     string
	ScaleDomain    float64
}

// staticRow carries one pre-formatted table row into the template
type staticRow struct {
	Symbol      string
	Date        string
	Open        string
	High        string
	Low         string
	Close       string
	Volume      string
	AdjClose    string
	Return      string
	ReturnColor string
	ReturnText  string
}

// staticDocument is the template context for the static artifact
type staticDocument struct {
	Title      string
	Subtitle   string
	SourceNote string
	Rows       []staticRow
}

// RenderStatic renders the table into a self-contained, read-only HTML
// document. Output is deterministic for identical input; the table is not
// modified.
func RenderStatic(table returns.Table, cfg StaticConfig) ([]byte, error) {
	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}
	if cfg.DateLayout == "" {
		cfg.DateLayout = DefaultDateLayout
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = DefaultCurrencySymbol
	}
	if cfg.ScaleDomain <= 0 {
		cfg.ScaleDomain = DefaultScaleDomain
	}

	doc := staticDocument{
		Title:      cfg.Title,
		SourceNote: cfg.SourceNote,
		Rows:       make([]staticRow, 0, len(table.Rows)),
	}
	doc.Subtitle = Subtitle(table, cfg.DateLayout)

	for _, row := range table.Rows {
		sr := staticRow{
			Symbol:   row.Symbol,
			Date:     row.Date.Format(cfg.DateLayout),
			Open:     Number(row.Open),
			High:     Number(row.High),
			Low:      Number(row.Low),
			Close:    Number(row.Close),
			Volume:   Magnitude(float64(row.Volume)),
			AdjClose: Currency(cfg.CurrencySymbol, row.AdjClose),
			Return:   "-",
		}
		if row.Return != nil {
			sr.Return = Percent(*row.Return)
			sr.ReturnColor = DivergingColor(*row.Return, cfg.ScaleDomain)
			sr.ReturnText = TextColorFor(sr.ReturnColor)
		}
		doc.Rows = append(doc.Rows, sr)
	}

	tmpl, err := template.New("static").Parse(staticTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse static template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to render static table: %w", err)
	}
	return buf.Bytes(), nil
}

// Subtitle derives the date-range line shown under a table title, e.g.
// "Jan 11, 2021 to Jan 15, 2021". An empty table yields an empty subtitle.
func Subtitle(table returns.Table, dateLayout string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	min, max := table.MinDate(), table.MaxDate()
	if min.Equal(max) {
		return min.Format(dateLayout)
	}
	return min.Format(dateLayout) + " to " + max.Format(dateLayout)
}
