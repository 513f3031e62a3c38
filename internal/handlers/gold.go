package handlers

import (
	"net/http"

	"marketpulse/gateway-go/internal/models"
)

func (a *API) Gold(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	symbol := queryParam(r, "symbol", "XAU")
	timeframe := queryParam(r, "timeframe", "1D")

	ctx, cancel := a.timeboxed(r)
	defer cancel()

	data := a.metals.Candles(ctx, symbol, timeframe)
	writeJSON(w, http.StatusOK, models.SeriesResponse{
		Data: data,
		Metadata: models.SeriesMetadata{
			Symbol:    symbol,
			Timeframe: timeframe,
			AssetType: "metal",
		},
	})
}
