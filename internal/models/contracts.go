package models

// PricePoint is the canonical shape every price provider normalizes into.
// Close is always present; the remaining fields depend on what the provider
// returned and are omitted from JSON when absent.
type PricePoint struct {
	Timestamp string   `json:"timestamp"`
	Close     float64  `json:"close"`
	Open      *float64 `json:"open,omitempty"`
	High      *float64 `json:"high,omitempty"`
	Low       *float64 `json:"low,omitempty"`
	Volume    *float64 `json:"volume,omitempty"`
}

type SeriesMetadata struct {
	Symbol    string `json:"symbol"`
	Timeframe string `json:"timeframe"`
	AssetType string `json:"assetType"`
}

type SeriesResponse struct {
	Data     []PricePoint   `json:"data"`
	Metadata SeriesMetadata `json:"metadata"`
}

type NewsArticle struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Snippet        string   `json:"snippet"`
	PublishedAt    string   `json:"publishedAt"`
	Source         string   `json:"source"`
	SentimentScore *float64 `json:"sentimentScore,omitempty"`
}

// SentimentSummary averages per-article scores. Score is null when no article
// carries one.
type SentimentSummary struct {
	Score *float64 `json:"score"`
	Label string   `json:"label"`
}

type NewsResult struct {
	Articles  []NewsArticle    `json:"articles"`
	Sentiment SentimentSummary `json:"sentiment"`
}

type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

type AnalyzeRequest struct {
	AssetType string        `json:"assetType"`
	Symbol    string        `json:"symbol,omitempty"`
	Timeframe string        `json:"timeframe"`
	ChartData []PricePoint  `json:"chartData"`
	News      []NewsArticle `json:"news"`
	Question  string        `json:"question"`
}

type AnalyzeResponse struct {
	Answer string `json:"answer"`
}

type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Features  map[string]bool `json:"features,omitempty"`
}
