package returns

import (
	"sort"
	"time"
)

// Table is the ordered collection of return records both renderers consume.
// Rows are sorted by (date, symbol).
type Table struct {
	Rows []Record
}

// NewTable builds a table from rows, sorting them by (date, symbol).
// The input slice is not modified.
func NewTable(rows []Record) Table {
	sorted := make([]Record, len(rows))
	copy(sorted, rows)
	sortRows(sorted)
	return Table{Rows: sorted}
}

// Window returns the subset of rows whose date lies in the closed interval
// [start, end], sorted by (date, symbol). Windowing an already-windowed
// table with the same bounds yields an identical table.
func (t Table) Window(start, end time.Time) Table {
	var rows []Record
	for _, row := range t.Rows {
		if row.Date.Before(start) || row.Date.After(end) {
			continue
		}
		rows = append(rows, row)
	}
	sortRows(rows)
	return Table{Rows: rows}
}

// MinDate returns the earliest date in the table, or the zero time if empty
func (t Table) MinDate() time.Time {
	var min time.Time
	for _, row := range t.Rows {
		if min.IsZero() || row.Date.Before(min) {
			min = row.Date
		}
	}
	return min
}

// MaxDate returns the latest date in the table, or the zero time if empty
func (t Table) MaxDate() time.Time {
	var max time.Time
	for _, row := range t.Rows {
		if max.IsZero() || row.Date.After(max) {
			max = row.Date
		}
	}
	return max
}

// Symbols returns the distinct symbols present, in lexical order
func (t Table) Symbols() []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, row := range t.Rows {
		if !seen[row.Symbol] {
			seen[row.Symbol] = true
			symbols = append(symbols, row.Symbol)
		}
	}
	sort.Strings(symbols)
	return symbols
}

func sortRows(rows []Record) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].Symbol < rows[j].Symbol
	})
}
