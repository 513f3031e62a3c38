package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketpulse/gateway-go/internal/config"
	"marketpulse/gateway-go/internal/services"
)

func testRouter() http.Handler {
	cfg := config.Config{
		CacheVersion:   "v1",
		CacheTTLNews:   30 * time.Minute,
		CacheTTLQuote:  time.Minute,
		RequestTimeout: 2 * time.Second,
		AITimeout:      2 * time.Second,
	}
	return NewRouter(cfg, services.NewMemoryCache())
}

func TestUnmatchedPathReturns404WithPath(t *testing.T) {
	h := testRouter()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bogus", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["error"] != "Not Found" || body["path"] != "/api/bogus" {
		t.Fatalf("unexpected 404 envelope: %v", body)
	}
}

func TestPreflightReturnsNoBodyWithCORS(t *testing.T) {
	h := testRouter()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/oil", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty preflight body, got %q", rec.Body.String())
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
		t.Fatalf("unexpected methods header: %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type" {
		t.Fatalf("unexpected headers header: %q", got)
	}
}

func TestCORSOnRegularResponses(t *testing.T) {
	h := testRouter()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected CORS on regular response, got %q", got)
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := testRouter()
	for _, path := range []string{"/api/health", "/health"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: bad body: %v", path, err)
		}
		if body["status"] != "ok" {
			t.Fatalf("%s: expected ok status, got %v", path, body["status"])
		}
		if _, ok := body["timestamp"]; !ok {
			t.Fatalf("%s: expected timestamp field", path)
		}
	}
}

func TestAnalyzeMethodDiscipline(t *testing.T) {
	h := testRouter()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ai/analyze", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for GET analyze, got %d", rec.Code)
	}
}

func TestMetricsPathBoundsCardinality(t *testing.T) {
	for _, route := range []string{"/api/oil", "/api/news", "/api/stocks/quote", "/health"} {
		if got := metricsPath(route); got != route {
			t.Fatalf("expected registered route %q to keep its label, got %q", route, got)
		}
	}
	for _, bogus := range []string{"/api/bogus", "/", "/api/oil/extra", "/..%2f"} {
		if got := metricsPath(bogus); got != "unmatched" {
			t.Fatalf("expected %q to collapse to unmatched, got %q", bogus, got)
		}
	}
}

func TestNewsThroughRouterSetsCacheHeader(t *testing.T) {
	h := testRouter()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/news?assetType=oil&symbol=WTI_USD&timeframe=1D", nil))
	if got := rec.Header().Get("X-Cache"); got != "MISS" {
		t.Fatalf("expected MISS, got %q", got)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/news?assetType=oil&symbol=WTI_USD&timeframe=1D", nil))
	if got := rec.Header().Get("X-Cache"); got != "HIT" {
		t.Fatalf("expected HIT, got %q", got)
	}
}
