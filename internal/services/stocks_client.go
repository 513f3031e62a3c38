package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"marketpulse/gateway-go/internal/config"
	"marketpulse/gateway-go/internal/logger"
	"marketpulse/gateway-go/internal/models"
)

const twelveDataBaseURL = "https://api.twelvedata.com"

// StocksClient wraps the Twelve Data equity feed. Unlike the commodity
// clients it remembers the last good payload per symbol, so a rate-limited or
// failing upstream serves slightly stale data before resorting to synthetic.
type StocksClient struct {
	hc      *http.Client
	apiKey  string
	baseURL string

	mu         sync.Mutex
	lastSeries map[string][]models.PricePoint
	lastQuote  map[string]models.Quote
}

func NewStocksClient(cfg config.Config) *StocksClient {
	return &StocksClient{
		hc:         &http.Client{Timeout: cfg.RequestTimeout},
		apiKey:     cfg.TwelveDataAPIKey,
		baseURL:    twelveDataBaseURL,
		lastSeries: make(map[string][]models.PricePoint),
		lastQuote:  make(map[string]models.Quote),
	}
}

func (c *StocksClient) Candles(ctx context.Context, symbol, timeframe string) []models.PricePoint {
	if c.apiKey == "" {
		return SyntheticSeries(symbol, timeframe)
	}
	data, err := c.fetchSeries(ctx, symbol, timeframe)
	if err != nil {
		logger.Warn("stocks provider failed",
			zap.String("symbol", symbol), zap.Error(err))
		if stale, ok := c.staleSeries(symbol, timeframe); ok {
			return stale
		}
		return SyntheticSeries(symbol, timeframe)
	}
	c.storeSeries(symbol, timeframe, data)
	return data
}

func (c *StocksClient) Quote(ctx context.Context, symbol string) models.Quote {
	if c.apiKey == "" {
		return SyntheticQuote(symbol)
	}
	q, err := c.fetchQuote(ctx, symbol)
	if err != nil {
		logger.Warn("stocks quote failed",
			zap.String("symbol", symbol), zap.Error(err))
		c.mu.Lock()
		stale, ok := c.lastQuote[symbol]
		c.mu.Unlock()
		if ok {
			return stale
		}
		return SyntheticQuote(symbol)
	}
	c.mu.Lock()
	c.lastQuote[symbol] = q
	c.mu.Unlock()
	return q
}

func stockInterval(timeframe string) (interval string, outputSize int) {
	switch timeframe {
	case "1D":
		return "5min", 78
	case "1W":
		return "1h", 168
	default:
		return "1day", 30
	}
}

func (c *StocksClient) fetchSeries(ctx context.Context, symbol, timeframe string) ([]models.PricePoint, error) {
	interval, size := stockInterval(timeframe)
	url := fmt.Sprintf("%s/time_series?symbol=%s&interval=%s&outputsize=%d&apikey=%s",
		c.baseURL, symbol, interval, size, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("twelvedata: %s", res.Status)
	}

	var payload struct {
		Status string `json:"status"`
		Values []struct {
			Datetime string `json:"datetime"`
			Open     string `json:"open"`
			High     string `json:"high"`
			Low      string `json:"low"`
			Close    string `json:"close"`
			Volume   string `json:"volume"`
		} `json:"values"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Status != "" && payload.Status != "ok" {
		return nil, fmt.Errorf("twelvedata: status %s", payload.Status)
	}

	// Per-record tolerant normalization: a record only needs a parseable
	// close and datetime; absent OHLV fields stay nil. Values arrive
	// newest first.
	out := make([]models.PricePoint, 0, len(payload.Values))
	for i := len(payload.Values) - 1; i >= 0; i-- {
		v := payload.Values[i]
		closeP, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			continue
		}
		ts, ok := normalizeDatetime(v.Datetime)
		if !ok {
			continue
		}
		out = append(out, models.PricePoint{
			Timestamp: ts,
			Close:     closeP,
			Open:      parseOptFloat(v.Open),
			High:      parseOptFloat(v.High),
			Low:       parseOptFloat(v.Low),
			Volume:    parseOptFloat(v.Volume),
		})
	}
	return out, nil
}

func (c *StocksClient) fetchQuote(ctx context.Context, symbol string) (models.Quote, error) {
	url := fmt.Sprintf("%s/quote?symbol=%s&apikey=%s", c.baseURL, symbol, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Quote{}, err
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return models.Quote{}, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return models.Quote{}, fmt.Errorf("twelvedata quote: %s", res.Status)
	}

	var payload struct {
		Symbol        string `json:"symbol"`
		Close         string `json:"close"`
		Change        string `json:"change"`
		PercentChange string `json:"percent_change"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return models.Quote{}, err
	}
	price, err := strconv.ParseFloat(payload.Close, 64)
	if err != nil {
		return models.Quote{}, fmt.Errorf("twelvedata quote: bad close %q", payload.Close)
	}
	change, _ := strconv.ParseFloat(payload.Change, 64)
	pct, _ := strconv.ParseFloat(payload.PercentChange, 64)
	return models.Quote{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: pct,
	}, nil
}

// normalizeDatetime converts Twelve Data's space-separated datetimes (and
// bare dates from daily intervals) into RFC3339, the canonical timestamp
// format every other provider emits.
func normalizeDatetime(s string) (string, bool) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339), true
		}
	}
	return "", false
}

func parseOptFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func seriesKey(symbol, timeframe string) string {
	return symbol + ":" + timeframe
}

func (c *StocksClient) storeSeries(symbol, timeframe string, data []models.PricePoint) {
	if len(data) == 0 {
		return
	}
	c.mu.Lock()
	c.lastSeries[seriesKey(symbol, timeframe)] = data
	c.mu.Unlock()
}

func (c *StocksClient) staleSeries(symbol, timeframe string) ([]models.PricePoint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.lastSeries[seriesKey(symbol, timeframe)]
	return data, ok
}
