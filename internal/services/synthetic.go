package services

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketpulse/gateway-go/internal/models"
)

// Synthetic data generators, used whenever a provider credential is absent or
// a provider call fails. Structure is deterministic (point count, spacing),
// values are random around a per-asset base price.

func seriesShape(timeframe string) (points int, interval time.Duration) {
	switch timeframe {
	case "1D":
		return 78, 5 * time.Minute
	case "1W":
		return 168, time.Hour
	default:
		return 30, 24 * time.Hour
	}
}

var basePrices = map[string]float64{
	"WTI_USD":         78.50,
	"BRENT_CRUDE_USD": 82.30,
	"NATURAL_GAS_USD": 2.85,
	"XAU":             2350.00,
	"XAG":             28.40,
	"XPT":             950.00,
	"XPD":             1020.00,
	"AAPL":            210.00,
	"MSFT":            425.00,
	"GOOGL":           170.00,
	"AMZN":            185.00,
	"TSLA":            240.00,
	"NVDA":            120.00,
}

func basePrice(symbol string) float64 {
	if p, ok := basePrices[strings.ToUpper(symbol)]; ok {
		return p
	}
	return 150.00
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// SyntheticSeries walks from now-(points-1)*interval up to now, one point per
// step. High and low are independent jitters around close; they are not
// clamped to bracket open.
func SyntheticSeries(symbol, timeframe string) []models.PricePoint {
	points, interval := seriesShape(timeframe)
	base := basePrice(symbol)
	start := time.Now().UTC().Add(-time.Duration(points-1) * interval)

	out := make([]models.PricePoint, 0, points)
	for i := 0; i < points; i++ {
		noise := (rand.Float64() - 0.5) * base * 0.01
		drift := float64(i) * base * 0.0001
		closeP := round2(base + noise + drift)

		open := round2(closeP + (rand.Float64()-0.5)*base*0.004)
		high := round2(closeP + rand.Float64()*base*0.004)
		low := round2(closeP - rand.Float64()*base*0.004)
		volume := round2(float64(1_000_000 + rand.Intn(9_000_000)))

		out = append(out, models.PricePoint{
			Timestamp: start.Add(time.Duration(i) * interval).Format(time.RFC3339),
			Close:     closeP,
			Open:      &open,
			High:      &high,
			Low:       &low,
			Volume:    &volume,
		})
	}
	return out
}

// SyntheticQuote derives change fields from the distance to the asset base.
func SyntheticQuote(symbol string) models.Quote {
	base := basePrice(symbol)
	price := round2(base * (1 + (rand.Float64()-0.5)*0.02))
	change := round2(price - base)
	pct := 0.0
	if base != 0 {
		pct = round2(change / base * 100)
	}
	return models.Quote{
		Symbol:        strings.ToUpper(symbol),
		Price:         price,
		Change:        change,
		ChangePercent: pct,
	}
}

var syntheticHeadlines = []struct {
	title   string
	snippet string
	score   float64
}{
	{
		title:   "%s extends gains as demand outlook improves",
		snippet: "Analysts point to resilient consumption figures and a softer dollar as support for %s.",
		score:   0.6,
	},
	{
		title:   "Institutional flows into %s hit a monthly high",
		snippet: "Fund positioning data shows renewed appetite for %s exposure among large allocators.",
		score:   0.3,
	},
	{
		title:   "%s trades in a narrow range ahead of economic data",
		snippet: "Markets await this week's inflation print before taking a directional view on %s.",
		score:   0.0,
	},
	{
		title:   "Profit-taking trims recent %s rally",
		snippet: "Short-term holders locked in gains, pushing %s off its local high.",
		score:   -0.2,
	},
	{
		title:   "Supply concerns weigh on %s sentiment",
		snippet: "Rising inventories and cautious guidance have traders reassessing %s positioning.",
		score:   -0.5,
	},
}

// SyntheticNews returns five templated articles with staggered timestamps.
func SyntheticNews(assetType, symbol string) []models.NewsArticle {
	name := assetDisplayName(assetType, symbol)
	now := time.Now().UTC()
	out := make([]models.NewsArticle, 0, len(syntheticHeadlines))
	for i, h := range syntheticHeadlines {
		score := h.score
		out = append(out, models.NewsArticle{
			ID:             uuid.NewString(),
			Title:          fmt.Sprintf(h.title, name),
			URL:            fmt.Sprintf("https://news.example.com/%s/%d", strings.ToLower(symbol), i+1),
			Snippet:        fmt.Sprintf(h.snippet, name),
			PublishedAt:    now.Add(-time.Duration(i*2+1) * time.Hour).Format(time.RFC3339),
			Source:         "MarketPulse Wire",
			SentimentScore: &score,
		})
	}
	return out
}

// SyntheticAnalysis is the narrative fallback. It echoes the asset and the
// question so the response stays useful without a configured model.
func SyntheticAnalysis(req models.AnalyzeRequest) string {
	name := assetDisplayName(req.AssetType, req.Symbol)
	trend := "sideways"
	if n := len(req.ChartData); n >= 2 {
		diff := req.ChartData[n-1].Close - req.ChartData[0].Close
		if diff > 0 {
			trend = "an upward"
		} else if diff < 0 {
			trend = "a downward"
		}
	}
	return fmt.Sprintf(
		"Analysis for %s\n\nQuestion: %s\n\nOver the selected period the chart shows %s drift. "+
			"Recent headlines are mixed, with no single catalyst dominating the tape. "+
			"Watch the range extremes for confirmation before acting; volume on a breakout "+
			"is the usual tell. This is an automatically generated summary produced without "+
			"a live model, based on the data supplied with the request.",
		name, req.Question, trend,
	)
}

func assetDisplayName(assetType, symbol string) string {
	if symbol != "" {
		return strings.ToUpper(symbol)
	}
	switch assetType {
	case "oil":
		return "Crude Oil"
	case "metal":
		return "Gold"
	default:
		return "the asset"
	}
}
