package handlers

import (
	"net/http"

	"marketpulse/gateway-go/internal/models"
)

func (a *API) Oil(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	code := queryParam(r, "code", "WTI_USD")
	timeframe := queryParam(r, "timeframe", "1D")

	ctx, cancel := a.timeboxed(r)
	defer cancel()

	data := a.oil.Candles(ctx, code, timeframe)
	writeJSON(w, http.StatusOK, models.SeriesResponse{
		Data: data,
		Metadata: models.SeriesMetadata{
			Symbol:    code,
			Timeframe: timeframe,
			AssetType: "oil",
		},
	})
}
