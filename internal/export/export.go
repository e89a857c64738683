package export

import (
	"github.com/nrohr/tables/internal/returns"
)

// Row is the flat dataset record written by the CSV and Parquet exporters.
// Return is optional; the first session of each symbol has none.
type Row struct {
	Symbol   string   `csv:"symbol" parquet:"name=symbol, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Date     string   `csv:"date" parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Open     float64  `csv:"open" parquet:"name=open, type=DOUBLE, encoding=PLAIN"`
	High     float64  `csv:"high" parquet:"name=high, type=DOUBLE, encoding=PLAIN"`
	Low      float64  `csv:"low" parquet:"name=low, type=DOUBLE, encoding=PLAIN"`
	Close    float64  `csv:"close" parquet:"name=close, type=DOUBLE, encoding=PLAIN"`
	Volume   int64    `csv:"volume" parquet:"name=volume, type=INT64, encoding=DELTA_BINARY_PACKED"`
	AdjClose float64  `csv:"adj_close" parquet:"name=adj_close, type=DOUBLE, encoding=PLAIN"`
	Return   *float64 `csv:"return" parquet:"name=return, type=DOUBLE, repetitiontype=OPTIONAL"`
}

// FromTable flattens the computed table into export rows, preserving its
// (date, symbol) order
func FromTable(table returns.Table) []Row {
	rows := make([]Row, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, Row{
			Symbol:   row.Symbol,
			Date:     row.Date.Format("2006-01-02"),
			Open:     row.Open,
			High:     row.High,
			Low:      row.Low,
			Close:    row.Close,
			Volume:   row.Volume,
			AdjClose: row.AdjClose,
			Return:   row.Return,
		})
	}
	return rows
}
