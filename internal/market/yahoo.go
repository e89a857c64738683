package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultYahooBaseURL = "https://query1.finance.yahoo.com"
	defaultHTTPTimeout  = 30 * time.Second
	yahooUserAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// chartResponse mirrors the fields we read from the v8 chart API
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamps []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
				Adjclose []struct {
					Adjclose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// YahooSource fetches daily candles from the Yahoo Finance chart API
type YahooSource struct {
	client *resty.Client
}

// YahooOption customizes the Yahoo source
type YahooOption func(*YahooSource)

// WithYahooBaseURL overrides the API base URL, mainly for tests
func WithYahooBaseURL(baseURL string) YahooOption {
	return func(ys *YahooSource) {
		ys.client.SetBaseURL(baseURL)
	}
}

// WithYahooTimeout overrides the HTTP request timeout
func WithYahooTimeout(timeout time.Duration) YahooOption {
	return func(ys *YahooSource) {
		ys.client.SetTimeout(timeout)
	}
}

// NewYahooSource creates a Yahoo chart API source
func NewYahooSource(opts ...YahooOption) *YahooSource {
	ys := &YahooSource{
		client: resty.New().
			SetBaseURL(defaultYahooBaseURL).
			SetTimeout(defaultHTTPTimeout).
			SetHeader("User-Agent", yahooUserAgent),
	}
	for _, opt := range opts {
		opt(ys)
	}
	return ys
}

// Name returns the source identifier
func (ys *YahooSource) Name() string {
	return "yahoo"
}

// Daily fetches day candles for the symbol from the given date up to now
func (ys *YahooSource) Daily(ctx context.Context, symbol string, from time.Time) ([]PriceRecord, error) {
	resp, err := ys.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"period1":  strconv.FormatInt(from.Unix(), 10),
			"period2":  strconv.FormatInt(time.Now().Unix(), 10),
			"interval": "1d",
			"events":   "div,splits",
		}).
		Get("/v8/finance/chart/" + symbol)
	if err != nil {
		return nil, fmt.Errorf("yahoo request for %s failed: %w", symbol, err)
	}

	// Yahoo reports failures (unknown symbol, bad range) as a chart.error
	// object, sometimes with a non-200 status
	var chart chartResponse
	if err := json.Unmarshal(resp.Body(), &chart); err != nil {
		return nil, fmt.Errorf("failed to decode yahoo response for %s: %w", symbol, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo error for %s: %s (%s)",
			symbol, chart.Chart.Error.Description, chart.Chart.Error.Code)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("yahoo returned status %d for %s", resp.StatusCode(), symbol)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo returned no data for %s", symbol)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	// The adjclose indicator is absent for some instrument classes; fall back
	// to the raw close in that case
	var adjclose []*float64
	if len(result.Indicators.Adjclose) > 0 {
		adjclose = result.Indicators.Adjclose[0].Adjclose
	}

	var records []PriceRecord
	for i, ts := range result.Timestamps {
		// Sessions with null quote values (halts, pre-listing padding) are skipped
		closePrice, ok := floatAt(quote.Close, i)
		if !ok {
			continue
		}
		openPrice, ok := floatAt(quote.Open, i)
		if !ok {
			continue
		}
		highPrice, ok := floatAt(quote.High, i)
		if !ok {
			continue
		}
		lowPrice, ok := floatAt(quote.Low, i)
		if !ok {
			continue
		}

		record := PriceRecord{
			Symbol:   symbol,
			Date:     dateOf(ts),
			Open:     openPrice,
			High:     highPrice,
			Low:      lowPrice,
			Close:    closePrice,
			Volume:   intAt(quote.Volume, i),
			AdjClose: closePrice,
		}
		if adj, ok := floatAt(adjclose, i); ok {
			record.AdjClose = adj
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("yahoo returned no usable candles for %s", symbol)
	}
	return records, nil
}

// dateOf normalizes a session timestamp to midnight UTC
func dateOf(ts int64) time.Time {
	t := time.Unix(ts, 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Helper functions for reading nullable indicator arrays
func floatAt(vals []*float64, i int) (float64, bool) {
	if i >= len(vals) || vals[i] == nil {
		return 0, false
	}
	return *vals[i], true
}

func intAt(vals []*int64, i int) int64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return *vals[i]
}
