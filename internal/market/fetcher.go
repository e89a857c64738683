package market

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"
)

// Fetcher runs the sequential per-symbol download loop against a Source
type Fetcher struct {
	source       Source
	requestDelay time.Duration
	maxRetries   int
}

// NewFetcher creates a fetcher. maxRetries below 1 means a single attempt;
// a zero requestDelay disables the pause between symbols.
func NewFetcher(source Source, requestDelay time.Duration, maxRetries int) *Fetcher {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Fetcher{
		source:       source,
		requestDelay: requestDelay,
		maxRetries:   maxRetries,
	}
}

// FetchAll downloads daily records for all symbols, one symbol at a time.
// The combined result keeps each symbol's records date-ascending. A symbol
// that still fails after the configured retries aborts the whole run.
func (f *Fetcher) FetchAll(ctx context.Context, symbols []string, from time.Time) ([]PriceRecord, error) {
	log.Printf("Fetching daily prices for %d symbols from %s...", len(symbols), f.source.Name())

	var all []PriceRecord
	for i, symbol := range symbols {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			// Continue processing
		}

		log.Printf("Fetching %s...", symbol)
		records, err := f.fetchWithRetry(ctx, symbol, from)
		if err != nil {
			return nil, fmt.Errorf("fetch failed for %s: %w", symbol, err)
		}
		all = append(all, records...)

		// Respect rate limits between symbols
		if f.requestDelay > 0 && i < len(symbols)-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.requestDelay):
				// Continue after delay
			}
		}
	}

	log.Printf("Fetched %d records for %d symbols", len(all), len(symbols))
	return all, nil
}

// fetchWithRetry attempts to fetch a single symbol with bounded retries
func (f *Fetcher) fetchWithRetry(ctx context.Context, symbol string, from time.Time) ([]PriceRecord, error) {
	var lastErr error
	for i := 0; i < f.maxRetries; i++ {
		records, err := f.source.Daily(ctx, symbol, from)
		if err == nil {
			sort.Slice(records, func(a, b int) bool {
				return records[a].Date.Before(records[b].Date)
			})
			return records, nil
		}
		lastErr = err
		log.Printf("Retry %d: error fetching %s: %v", i+1, symbol, err)

		// Wait longer before retrying in case we hit a rate limit
		if i < f.maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.requestDelay * 2):
			}
		}
	}
	return nil, fmt.Errorf("failed after %d attempts: %w", f.maxRetries, lastErr)
}
