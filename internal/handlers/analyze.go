package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"marketpulse/gateway-go/internal/models"
)

func (a *API) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Invalid JSON body",
			"message": err.Error(),
		})
		return
	}

	var missing []string
	if req.AssetType == "" {
		missing = append(missing, "assetType")
	}
	if req.Timeframe == "" {
		missing = append(missing, "timeframe")
	}
	if req.ChartData == nil {
		missing = append(missing, "chartData")
	}
	if req.News == nil {
		missing = append(missing, "news")
	}
	if strings.TrimSpace(req.Question) == "" {
		missing = append(missing, "question")
	}
	if len(missing) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Missing required fields",
			"message": "required: " + strings.Join(missing, ", "),
		})
		return
	}

	ctx, cancel := a.timeboxedAI(r)
	defer cancel()

	answer := a.ai.Analyze(ctx, req)
	writeJSON(w, http.StatusOK, models.AnalyzeResponse{Answer: answer})
}
