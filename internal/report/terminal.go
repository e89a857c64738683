package report

import (
	"fmt"
	"io"

	"github.com/nrohr/tables/internal/returns"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
)

// PrintTable writes an ANSI-colored preview of the table to w, one line per
// row, with returns colored by sign
func PrintTable(w io.Writer, table returns.Table, dateLayout, currencySymbol string) {
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	if currencySymbol == "" {
		currencySymbol = DefaultCurrencySymbol
	}

	fmt.Fprintf(w, "%s%-8s %-14s %12s %12s %10s%s\n",
		ansiBold, "Symbol", "Date", "Adj Close", "Volume", "Return", ansiReset)
	for _, row := range table.Rows {
		fmt.Fprintf(w, "%-8s %-14s %12s %12s %s\n",
			row.Symbol,
			row.Date.Format(dateLayout),
			Currency(currencySymbol, row.AdjClose),
			Magnitude(float64(row.Volume)),
			colorReturn(row.Return))
	}
	fmt.Fprintf(w, "%d rows\n", len(table.Rows))
}

// colorReturn formats a return green for gains, red for losses and dim for
// the first session of a symbol
func colorReturn(ret *float64) string {
	if ret == nil {
		return fmt.Sprintf("%s%10s%s", ansiDim, "-", ansiReset)
	}
	color := ansiGreen
	if *ret < 0 {
		color = ansiRed
	}
	return fmt.Sprintf("%s%10s%s", color, Percent(*ret), ansiReset)
}
