package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"marketpulse/gateway-go/internal/config"
	"marketpulse/gateway-go/internal/services"
)

type API struct {
	cfg    config.Config
	cache  services.Cache
	oil    *services.OilClient
	metals *services.MetalsClient
	stocks *services.StocksClient
	news   *services.NewsClient
	ai     *services.AIClient
}

func New(cfg config.Config, cache services.Cache) *API {
	if cache != nil {
		cache = services.NewVersionedCache(cache, cfg.CacheVersion)
	}
	return &API{
		cfg:    cfg,
		cache:  cache,
		oil:    services.NewOilClient(cfg),
		metals: services.NewMetalsClient(cfg),
		stocks: services.NewStocksClient(cfg),
		news:   services.NewNewsClient(cfg),
		ai:     services.NewAIClient(cfg),
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeRawJSON writes pre-marshaled bytes, so a cache hit replays the exact
// body of the response that populated it.
func writeRawJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "Method Not Allowed"})
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return false
	}
	return true
}

func queryParam(r *http.Request, key, def string) string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	return v
}

func (a *API) timeboxed(r *http.Request) (context.Context, context.CancelFunc) {
	d := a.cfg.RequestTimeout
	if d <= 0 {
		d = 10 * time.Second
	}
	return context.WithTimeout(r.Context(), d)
}

// timeboxedAI allows the longer narrative-generation deadline.
func (a *API) timeboxedAI(r *http.Request) (context.Context, context.CancelFunc) {
	d := a.cfg.AITimeout
	if d <= 0 {
		d = 60 * time.Second
	}
	return context.WithTimeout(r.Context(), d)
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
