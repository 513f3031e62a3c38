package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"marketpulse/gateway-go/internal/models"
	"marketpulse/gateway-go/internal/services"
)

func defaultSymbol(assetType string) string {
	switch assetType {
	case "oil":
		return "WTI_USD"
	case "metal":
		return "XAU"
	default:
		return "AAPL"
	}
}

func (a *API) News(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	assetType := queryParam(r, "assetType", "stock")
	symbol := queryParam(r, "symbol", defaultSymbol(assetType))
	timeframe := queryParam(r, "timeframe", "1D")

	ctx, cancel := a.timeboxed(r)
	defer cancel()

	key := fmt.Sprintf("news:%s:%s:%s", assetType, strings.ToUpper(symbol), timeframe)
	if a.cache != nil {
		if b, ok := a.cache.Get(ctx, key); ok {
			var cached models.NewsResult
			if err := services.UnmarshalCache(b, &cached); err == nil {
				w.Header().Set("X-Cache", "HIT")
				writeRawJSON(w, http.StatusOK, b)
				return
			}
		}
	}

	result := a.news.Fetch(ctx, assetType, symbol, timeframe)
	b, err := services.MarshalCache(result)
	if err != nil {
		w.Header().Set("X-Cache", "MISS")
		writeJSON(w, http.StatusOK, result)
		return
	}
	if a.cache != nil {
		_ = a.cache.Set(ctx, key, b, a.cfg.CacheTTLNews)
	}
	w.Header().Set("X-Cache", "MISS")
	writeRawJSON(w, http.StatusOK, b)
}
