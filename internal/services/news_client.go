package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"marketpulse/gateway-go/internal/config"
	"marketpulse/gateway-go/internal/logger"
	"marketpulse/gateway-go/internal/models"
	"marketpulse/gateway-go/internal/sentiment"
)

const newsAPIBaseURL = "https://newsapi.org/v2"

// NewsClient fetches recent articles for an asset and scores each one with
// the keyword analyzer, since the provider carries no sentiment of its own.
type NewsClient struct {
	hc       *http.Client
	apiKey   string
	baseURL  string
	analyzer *sentiment.Analyzer
}

func NewNewsClient(cfg config.Config) *NewsClient {
	return &NewsClient{
		hc:       &http.Client{Timeout: cfg.RequestTimeout},
		apiKey:   cfg.NewsAPIKey,
		baseURL:  newsAPIBaseURL,
		analyzer: sentiment.NewAnalyzer(),
	}
}

func (c *NewsClient) Fetch(ctx context.Context, assetType, symbol, timeframe string) models.NewsResult {
	articles := c.articles(ctx, assetType, symbol, timeframe)
	return models.NewsResult{
		Articles:  articles,
		Sentiment: SummarizeSentiment(articles),
	}
}

func (c *NewsClient) articles(ctx context.Context, assetType, symbol, timeframe string) []models.NewsArticle {
	if c.apiKey == "" {
		return SyntheticNews(assetType, symbol)
	}
	out, err := c.fetch(ctx, assetType, symbol, timeframe)
	if err != nil {
		logger.Warn("news provider failed, serving synthetic articles",
			zap.String("assetType", assetType), zap.String("symbol", symbol), zap.Error(err))
		return SyntheticNews(assetType, symbol)
	}
	return out
}

func newsQuery(assetType, symbol string) string {
	switch assetType {
	case "oil":
		return "crude oil prices"
	case "metal":
		switch symbol {
		case "XAG":
			return "silver prices"
		case "XPT":
			return "platinum prices"
		default:
			return "gold prices"
		}
	default:
		if symbol != "" {
			return symbol + " stock"
		}
		return "stock market"
	}
}

func newsLookback(timeframe string) time.Duration {
	switch timeframe {
	case "1D":
		return 24 * time.Hour
	case "1W":
		return 7 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

func (c *NewsClient) fetch(ctx context.Context, assetType, symbol, timeframe string) ([]models.NewsArticle, error) {
	q := url.QueryEscape(newsQuery(assetType, symbol))
	from := time.Now().UTC().Add(-newsLookback(timeframe)).Format("2006-01-02")
	endpoint := fmt.Sprintf("%s/everything?q=%s&from=%s&sortBy=publishedAt&pageSize=20&language=en&apiKey=%s",
		c.baseURL, q, from, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("news api: %s", res.Status)
	}

	var payload struct {
		Status   string `json:"status"`
		Articles []struct {
			Source struct {
				Name string `json:"name"`
			} `json:"source"`
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			PublishedAt string `json:"publishedAt"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("news api: status %s", payload.Status)
	}

	out := make([]models.NewsArticle, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		score := c.analyzer.Score(a.Title + " " + a.Description)
		out = append(out, models.NewsArticle{
			ID:             articleID(a.URL),
			Title:          a.Title,
			URL:            a.URL,
			Snippet:        a.Description,
			PublishedAt:    a.PublishedAt,
			Source:         a.Source.Name,
			SentimentScore: &score,
		})
	}
	return out, nil
}

func articleID(rawURL string) string {
	sum := sha1.Sum([]byte(rawURL))
	return hex.EncodeToString(sum[:8])
}

// SummarizeSentiment averages the article scores that are present. Averages
// of exactly +/-0.1 stay neutral.
func SummarizeSentiment(articles []models.NewsArticle) models.SentimentSummary {
	var sum float64
	var n int
	for _, a := range articles {
		if a.SentimentScore == nil {
			continue
		}
		sum += *a.SentimentScore
		n++
	}
	if n == 0 {
		return models.SentimentSummary{Score: nil, Label: "neutral"}
	}
	avg := sum / float64(n)
	label := "neutral"
	if avg > 0.1 {
		label = "bullish"
	} else if avg < -0.1 {
		label = "bearish"
	}
	return models.SentimentSummary{Score: &avg, Label: label}
}
