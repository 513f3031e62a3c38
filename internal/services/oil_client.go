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

const oilAPIBaseURL = "https://api.oilpriceapi.com/v1"

// OilClient wraps the OilPriceAPI commodity feed.
type OilClient struct {
	hc      *http.Client
	apiKey  string
	baseURL string
}

func NewOilClient(cfg config.Config) *OilClient {
	return &OilClient{
		hc:      &http.Client{Timeout: cfg.RequestTimeout},
		apiKey:  cfg.OilAPIKey,
		baseURL: oilAPIBaseURL,
	}
}

// Candles returns a chronological series for the given commodity code. The
// provider is never allowed to fail the caller: no credential or any upstream
// error falls back to synthetic data.
func (c *OilClient) Candles(ctx context.Context, code, timeframe string) []models.PricePoint {
	if c.apiKey == "" {
		return SyntheticSeries(code, timeframe)
	}
	data, err := c.fetch(ctx, code, timeframe)
	if err != nil {
		logger.Warn("oil provider failed, serving synthetic data",
			zap.String("code", code), zap.Error(err))
		return SyntheticSeries(code, timeframe)
	}
	return data
}

func oilRangePath(timeframe string) string {
	switch timeframe {
	case "1D":
		return "past_day"
	case "1W":
		return "past_week"
	default:
		return "past_month"
	}
}

func (c *OilClient) fetch(ctx context.Context, code, timeframe string) ([]models.PricePoint, error) {
	url := fmt.Sprintf("%s/prices/%s?by_code=%s", c.baseURL, oilRangePath(timeframe), code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("oil api: %s", res.Status)
	}

	var payload struct {
		Status string `json:"status"`
		Data   struct {
			Prices []struct {
				Price     float64 `json:"price"`
				Code      string  `json:"code"`
				CreatedAt string  `json:"created_at"`
			} `json:"prices"`
		} `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}

	// Any record missing a critical field drops the whole series rather than
	// producing partially populated points.
	out := make([]models.PricePoint, 0, len(payload.Data.Prices))
	for _, p := range payload.Data.Prices {
		if p.Price <= 0 || p.CreatedAt == "" {
			return []models.PricePoint{}, nil
		}
		out = append(out, models.PricePoint{
			Timestamp: p.CreatedAt,
			Close:     p.Price,
		})
	}
	sortChronological(out)
	return out, nil
}

func sortChronological(points []models.PricePoint) {
	sort.Slice(points, func(i, j int) bool {
		ti, ei := time.Parse(time.RFC3339, points[i].Timestamp)
		tj, ej := time.Parse(time.RFC3339, points[j].Timestamp)
		if ei != nil || ej != nil {
			return points[i].Timestamp < points[j].Timestamp
		}
		return ti.Before(tj)
	})
}
