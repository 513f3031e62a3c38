package handlers

import (
	"net/http"
	"strings"

	"marketpulse/gateway-go/internal/models"
	"marketpulse/gateway-go/internal/services"
)

func (a *API) Stocks(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	symbol := strings.ToUpper(queryParam(r, "symbol", "AAPL"))
	timeframe := queryParam(r, "timeframe", "1D")

	ctx, cancel := a.timeboxed(r)
	defer cancel()

	data := a.stocks.Candles(ctx, symbol, timeframe)
	writeJSON(w, http.StatusOK, models.SeriesResponse{
		Data: data,
		Metadata: models.SeriesMetadata{
			Symbol:    symbol,
			Timeframe: timeframe,
			AssetType: "stock",
		},
	})
}

// StockQuote serves the latest price snapshot for a symbol, cached briefly.
func (a *API) StockQuote(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	symbol := strings.ToUpper(queryParam(r, "symbol", "AAPL"))

	ctx, cancel := a.timeboxed(r)
	defer cancel()

	key := "quote:" + symbol
	if a.cache != nil {
		if b, ok := a.cache.Get(ctx, key); ok {
			var cached models.Quote
			if err := services.UnmarshalCache(b, &cached); err == nil {
				writeRawJSON(w, http.StatusOK, b)
				return
			}
		}
	}

	quote := a.stocks.Quote(ctx, symbol)
	b, err := services.MarshalCache(quote)
	if err != nil {
		writeJSON(w, http.StatusOK, quote)
		return
	}
	if a.cache != nil {
		_ = a.cache.Set(ctx, key, b, a.cfg.CacheTTLQuote)
	}
	writeRawJSON(w, http.StatusOK, b)
}
