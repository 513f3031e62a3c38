package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"marketpulse/gateway-go/internal/models"
)

// BuildAnalysisPrompt assembles the narrative prompt from chart data, recent
// articles and the user's question. Pure function; all statistics derive from
// the request alone.
func BuildAnalysisPrompt(req models.AnalyzeRequest) string {
	var b strings.Builder
	name := assetDisplayName(req.AssetType, req.Symbol)

	b.WriteString(fmt.Sprintf("Asset: %s (timeframe %s)\n\n", name, req.Timeframe))
	b.WriteString("=== CHART SUMMARY ===\n")
	b.WriteString(chartSummary(req.ChartData))
	b.WriteString("\n=== RECENT NEWS ===\n")
	b.WriteString(newsSummary(req.News))
	b.WriteString("\n=== QUESTION ===\n")
	b.WriteString(req.Question)
	b.WriteString("\n\n=== INSTRUCTIONS ===\n")
	b.WriteString("Answer the question using the chart summary and news above. ")
	b.WriteString("Cite concrete numbers, mention the prevailing trend and the main risks, ")
	b.WriteString("and keep the answer under 300 words.\n")
	return b.String()
}

func chartSummary(points []models.PricePoint) string {
	if len(points) == 0 {
		return "No chart data available.\n"
	}

	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}
	first, last := closes[0], closes[len(closes)-1]
	minC, maxC := closes[0], closes[0]
	var sum float64
	for _, c := range closes {
		if c < minC {
			minC = c
		}
		if c > maxC {
			maxC = c
		}
		sum += c
	}
	mean := sum / float64(len(closes))

	change := last - first
	pct := 0.0
	if first != 0 {
		pct = change / first * 100
	}
	trend := "flat"
	if change > 0 {
		trend = "upward"
	} else if change < 0 {
		trend = "downward"
	}

	var variance float64
	for _, c := range closes {
		variance += (c - mean) * (c - mean)
	}
	variance /= float64(len(closes))
	volatility := 0.0
	if mean != 0 {
		volatility = math.Sqrt(variance) / mean * 100
	}

	return fmt.Sprintf(
		"Latest close: $%.2f\nRange: $%.2f to $%.2f\nChange: %s, trend %s\nVolatility: %.2f%% of mean close\n",
		last, minC, maxC, formatChange(change, pct), trend, volatility,
	)
}

func formatChange(change, pct float64) string {
	sign := "+"
	if change < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s$%.2f (%.2f%%)", sign, math.Abs(change), math.Abs(pct))
}

func newsSummary(articles []models.NewsArticle) string {
	if len(articles) == 0 {
		return "No recent news available.\n"
	}
	var b strings.Builder
	for i, a := range articles {
		if i >= 5 {
			break
		}
		emoji, label := sentimentMarker(a.SentimentScore)
		b.WriteString(fmt.Sprintf("%d. %s [%s] %s (%s, %s)\n",
			i+1, emoji, label, a.Title, a.Source, relativeAge(a.PublishedAt)))
	}
	return b.String()
}

func sentimentMarker(score *float64) (emoji, label string) {
	if score == nil || *score == 0 {
		return "➖", "Neutral"
	}
	if *score > 0 {
		return "📈", "Positive"
	}
	return "📉", "Negative"
}

// relativeAge buckets an article's age with integer truncation, not rounding.
func relativeAge(publishedAt string) string {
	t, err := time.Parse(time.RFC3339, publishedAt)
	if err != nil {
		return "recently"
	}
	hours := int(time.Since(t).Hours())
	switch {
	case hours < 1:
		return "Just now"
	case hours == 1:
		return "1 hour ago"
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := hours / 24
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
