package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"marketpulse/gateway-go/internal/config"
	"marketpulse/gateway-go/internal/logger"
	"marketpulse/gateway-go/internal/models"
)

const metalsAPIBaseURL = "https://api.metalpriceapi.com/v1"

// MetalsClient wraps the MetalpriceAPI daily-rate feed. Rates come back as
// metal units per USD, so the USD price is the inverse.
type MetalsClient struct {
	hc      *http.Client
	apiKey  string
	baseURL string
}

func NewMetalsClient(cfg config.Config) *MetalsClient {
	return &MetalsClient{
		hc:      &http.Client{Timeout: cfg.RequestTimeout},
		apiKey:  cfg.MetalAPIKey,
		baseURL: metalsAPIBaseURL,
	}
}

func (c *MetalsClient) Candles(ctx context.Context, symbol, timeframe string) []models.PricePoint {
	if c.apiKey == "" {
		return SyntheticSeries(symbol, timeframe)
	}
	data, err := c.fetch(ctx, symbol, timeframe)
	if err != nil {
		logger.Warn("metals provider failed, serving synthetic data",
			zap.String("symbol", symbol), zap.Error(err))
		return SyntheticSeries(symbol, timeframe)
	}
	return data
}

func metalsLookback(timeframe string) time.Duration {
	switch timeframe {
	case "1D":
		return 24 * time.Hour
	case "1W":
		return 7 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

func (c *MetalsClient) fetch(ctx context.Context, symbol, timeframe string) ([]models.PricePoint, error) {
	end := time.Now().UTC()
	start := end.Add(-metalsLookback(timeframe))
	url := fmt.Sprintf("%s/timeframe?api_key=%s&start_date=%s&end_date=%s&base=USD&currencies=%s",
		c.baseURL, c.apiKey, start.Format("2006-01-02"), end.Format("2006-01-02"), symbol)

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
		return nil, fmt.Errorf("metals api: %s", res.Status)
	}

	var payload struct {
		Success bool                          `json:"success"`
		Rates   map[string]map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if !payload.Success {
		return nil, fmt.Errorf("metals api: unsuccessful response")
	}

	dates := make([]string, 0, len(payload.Rates))
	for d := range payload.Rates {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	// Same critical-field rule as oil: one missing rate empties the series.
	out := make([]models.PricePoint, 0, len(dates))
	for _, d := range dates {
		rate, ok := payload.Rates[d][symbol]
		if !ok || rate <= 0 {
			return []models.PricePoint{}, nil
		}
		out = append(out, models.PricePoint{
			Timestamp: d + "T00:00:00Z",
			Close:     1 / rate,
		})
	}
	return out, nil
}
