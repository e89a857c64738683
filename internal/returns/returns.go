package returns

import (
	"sort"

	"github.com/nrohr/tables/internal/market"
)

// Record is a price record carrying its derived daily return.
// Return is nil for the first session of a symbol (no prior trading day)
// and the fractional change in adjusted close otherwise.
type Record struct {
	market.PriceRecord
	Return *float64
}

// Compute derives daily returns for every symbol group in records.
// Each group is sorted date-ascending and processed independently; the
// return for row i is (adj[i] - adj[i-1]) / adj[i-1].
func Compute(records []market.PriceRecord) []Record {
	// Group by symbol, preserving first-seen group order
	groups := make(map[string][]market.PriceRecord)
	var order []string
	for _, record := range records {
		if _, ok := groups[record.Symbol]; !ok {
			order = append(order, record.Symbol)
		}
		groups[record.Symbol] = append(groups[record.Symbol], record)
	}

	out := make([]Record, 0, len(records))
	for _, symbol := range order {
		group := groups[symbol]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		for i, record := range group {
			row := Record{PriceRecord: record}
			// A zero prior adjusted close would divide by zero; such a row
			// carries no meaningful return either
			if i > 0 && group[i-1].AdjClose != 0 {
				ret := (record.AdjClose - group[i-1].AdjClose) / group[i-1].AdjClose
				row.Return = &ret
			}
			out = append(out, row)
		}
	}
	return out
}
