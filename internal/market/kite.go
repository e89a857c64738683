package market

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	kiteconnect "github.com/zerodha/gokiteconnect/v4"
)

const defaultInstrumentsNSEURL = "https://api.kite.trade/instruments/NSE"

// KiteConfig carries credentials and endpoints for the Kite source
type KiteConfig struct {
	ApiKey            string
	AccessToken       string
	InstrumentsNSEURL string
}

// KiteSource fetches daily candles through the Kite Connect historical API.
// Day candles from Kite are adjusted for corporate actions, so AdjClose
// mirrors Close for this source.
type KiteSource struct {
	kite   *kiteconnect.Client
	client *resty.Client
	cfg    KiteConfig

	// tokens maps trading symbols to instrument tokens, loaded on first use
	tokens map[string]int64
}

// NewKiteSource creates an authenticated Kite source from direct credentials
func NewKiteSource(cfg KiteConfig) (*KiteSource, error) {
	if cfg.ApiKey == "" || cfg.AccessToken == "" {
		return nil, fmt.Errorf("kite source requires api_key and access_token; set them in config or TABLES_KITE_API_KEY / TABLES_KITE_ACCESS_TOKEN")
	}
	if cfg.InstrumentsNSEURL == "" {
		cfg.InstrumentsNSEURL = defaultInstrumentsNSEURL
	}

	kite := kiteconnect.New(cfg.ApiKey)
	kite.SetAccessToken(cfg.AccessToken)

	return &KiteSource{
		kite:   kite,
		client: resty.New().SetTimeout(defaultHTTPTimeout),
		cfg:    cfg,
	}, nil
}

// Name returns the source identifier
func (ks *KiteSource) Name() string {
	return "kite"
}

// Daily fetches day candles for the symbol from the given date up to now
func (ks *KiteSource) Daily(ctx context.Context, symbol string, from time.Time) ([]PriceRecord, error) {
	token, err := ks.lookupToken(ctx, symbol)
	if err != nil {
		return nil, err
	}

	historicalData, err := ks.kite.GetHistoricalData(int(token), "day", from, time.Now(), false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get historical data for %s: %w", symbol, err)
	}

	// Convert the data to our own format. Kite timestamps candles in
	// exchange time; sessions are normalized to midnight UTC so dates
	// compare consistently across sources.
	records := make([]PriceRecord, 0, len(historicalData))
	for _, data := range historicalData {
		d := data.Date.Time
		records = append(records, PriceRecord{
			Symbol:   symbol,
			Date:     time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			Open:     data.Open,
			High:     data.High,
			Low:      data.Low,
			Close:    data.Close,
			Volume:   int64(data.Volume),
			AdjClose: data.Close,
		})
	}
	return records, nil
}

// lookupToken resolves a trading symbol to its instrument token, loading the
// NSE instruments dump into memory on first use
func (ks *KiteSource) lookupToken(ctx context.Context, symbol string) (int64, error) {
	if ks.tokens == nil {
		if err := ks.loadInstruments(ctx); err != nil {
			return 0, err
		}
	}

	token, ok := ks.tokens[symbol]
	if !ok {
		return 0, fmt.Errorf("instrument not found: %s", symbol)
	}
	return token, nil
}

// loadInstruments downloads the NSE instruments dump and indexes instrument
// tokens by trading symbol. The dump is parsed in memory and not written to disk.
func (ks *KiteSource) loadInstruments(ctx context.Context) error {
	log.Println("Downloading NSE instruments...")

	resp, err := ks.client.R().SetContext(ctx).Get(ks.cfg.InstrumentsNSEURL)
	if err != nil {
		return fmt.Errorf("failed to download NSE instruments: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("failed to download NSE instruments, status code: %d", resp.StatusCode())
	}

	reader := csv.NewReader(bytes.NewReader(resp.Body()))

	// Read header and map column names to indices
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := make(map[string]int)
	for i, col := range header {
		columns[col] = i
	}
	for _, required := range []string{"instrument_token", "tradingsymbol", "exchange"} {
		if _, ok := columns[required]; !ok {
			return fmt.Errorf("instruments dump missing column %q", required)
		}
	}

	tokens := make(map[string]int64)
	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		// Only process NSE instruments
		if record[columns["exchange"]] != "NSE" {
			continue
		}

		token, err := strconv.ParseInt(record[columns["instrument_token"]], 10, 64)
		if err != nil {
			continue
		}
		tokens[record[columns["tradingsymbol"]]] = token
		count++
	}

	log.Printf("Loaded %d NSE instruments", count)
	ks.tokens = tokens
	return nil
}
