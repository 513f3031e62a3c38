package handlers

import (
	"net/http"

	"marketpulse/gateway-go/internal/models"
)

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Timestamp: nowISO(),
		Features: map[string]bool{
			"oil_provider_live":    a.cfg.OilAPIKey != "",
			"metals_provider_live": a.cfg.MetalAPIKey != "",
			"stocks_provider_live": a.cfg.TwelveDataAPIKey != "",
			"news_provider_live":   a.cfg.NewsAPIKey != "",
			"ai_provider_live":     a.cfg.OpenAIAPIKey != "",
		},
	})
}

// NotFound answers every path the router does not know.
func (a *API) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error": "Not Found",
		"path":  r.URL.Path,
	})
}
