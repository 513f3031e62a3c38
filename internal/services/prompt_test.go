package services

import (
	"strings"
	"testing"
	"time"

	"marketpulse/gateway-go/internal/models"
)

func TestChartSummaryReportsChange(t *testing.T) {
	got := chartSummary([]models.PricePoint{
		{Timestamp: "2026-08-20T00:00:00Z", Close: 100},
		{Timestamp: "2026-08-21T00:00:00Z", Close: 110},
	})
	if !strings.Contains(got, "+$10.00 (10.00%)") {
		t.Fatalf("expected change string in summary, got:\n%s", got)
	}
	if !strings.Contains(got, "upward") {
		t.Fatalf("expected upward trend, got:\n%s", got)
	}
}

func TestChartSummaryDownwardAndFlat(t *testing.T) {
	down := chartSummary([]models.PricePoint{{Close: 110}, {Close: 100}})
	if !strings.Contains(down, "-$10.00") || !strings.Contains(down, "downward") {
		t.Fatalf("expected downward summary, got:\n%s", down)
	}
	flat := chartSummary([]models.PricePoint{{Close: 100}, {Close: 100}})
	if !strings.Contains(flat, "flat") {
		t.Fatalf("expected flat trend, got:\n%s", flat)
	}
}

func TestChartSummaryEmpty(t *testing.T) {
	if got := chartSummary(nil); !strings.Contains(got, "No chart data available") {
		t.Fatalf("expected no-data sentence, got:\n%s", got)
	}
}

func TestNewsSummaryCapsAtFive(t *testing.T) {
	articles := make([]models.NewsArticle, 7)
	for i := range articles {
		articles[i] = models.NewsArticle{
			Title:       "Headline",
			Source:      "Wire",
			PublishedAt: time.Now().UTC().Format(time.RFC3339),
		}
	}
	got := newsSummary(articles)
	if !strings.Contains(got, "5. ") {
		t.Fatalf("expected fifth line, got:\n%s", got)
	}
	if strings.Contains(got, "6. ") {
		t.Fatalf("expected at most 5 lines, got:\n%s", got)
	}
}

func TestNewsSummaryEmpty(t *testing.T) {
	if got := newsSummary(nil); !strings.Contains(got, "No recent news available") {
		t.Fatalf("expected no-news sentence, got:\n%s", got)
	}
}

func TestRelativeAgeBuckets(t *testing.T) {
	now := time.Now().UTC()
	cases := []struct {
		age  time.Duration
		want string
	}{
		{30 * time.Minute, "Just now"},
		{90 * time.Minute, "1 hour ago"},
		{5 * time.Hour, "5 hours ago"},
		{26 * time.Hour, "1 day ago"},
		{75 * time.Hour, "3 days ago"},
	}
	for _, tc := range cases {
		got := relativeAge(now.Add(-tc.age).Format(time.RFC3339))
		if got != tc.want {
			t.Fatalf("age %v: expected %q, got %q", tc.age, tc.want, got)
		}
	}
	if got := relativeAge("not-a-timestamp"); got != "recently" {
		t.Fatalf("expected fallback for unparsable timestamp, got %q", got)
	}
}

func TestBuildAnalysisPromptSections(t *testing.T) {
	score := 0.4
	prompt := BuildAnalysisPrompt(models.AnalyzeRequest{
		AssetType: "stock",
		Symbol:    "AAPL",
		Timeframe: "1D",
		ChartData: []models.PricePoint{{Close: 100}, {Close: 105}},
		News: []models.NewsArticle{{
			Title:          "Earnings beat",
			Source:         "Wire",
			PublishedAt:    time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339),
			SentimentScore: &score,
		}},
		Question: "Should I pay attention to momentum?",
	})
	for _, section := range []string{
		"=== CHART SUMMARY ===",
		"=== RECENT NEWS ===",
		"=== QUESTION ===",
		"=== INSTRUCTIONS ===",
		"Should I pay attention to momentum?",
		"📈",
	} {
		if !strings.Contains(prompt, section) {
			t.Fatalf("prompt missing %q:\n%s", section, prompt)
		}
	}
}
