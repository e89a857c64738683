package market

import (
	"context"
	"time"
)

// PriceRecord represents one daily price observation for a symbol
type PriceRecord struct {
	Symbol   string
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   int64
	AdjClose float64
}

// Source retrieves historical daily prices for a single symbol
type Source interface {
	// Name identifies the source in logs and error messages
	Name() string

	// Daily returns day candles for the symbol from the given date up to now,
	// sorted date-ascending
	Daily(ctx context.Context, symbol string, from time.Time) ([]PriceRecord, error)
}
