package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"marketpulse/gateway-go/internal/config"
	"marketpulse/gateway-go/internal/handlers"
	"marketpulse/gateway-go/internal/services"
)

func NewRouter(cfg config.Config, cache services.Cache) http.Handler {
	api := handlers.New(cfg, cache)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", api.Health)
	mux.HandleFunc("/health", api.Health)
	mux.HandleFunc("/api/oil", api.Oil)
	mux.HandleFunc("/api/gold", api.Gold)
	mux.HandleFunc("/api/stocks", api.Stocks)
	mux.HandleFunc("/api/stocks/quote", api.StockQuote)
	mux.HandleFunc("/api/news", api.News)
	mux.HandleFunc("/api/ai/analyze", api.Analyze)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", api.NotFound)

	h := http.Handler(mux)
	h = withRecovery(h)
	h = withLogging(h)
	h = withMetrics(h)
	h = withCORS(h)
	return h
}
