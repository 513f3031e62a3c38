package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketpulse/gateway-go/internal/config"
	"marketpulse/gateway-go/internal/models"
	"marketpulse/gateway-go/internal/services"
)

func testConfig() config.Config {
	return config.Config{
		CacheVersion:   "v1",
		CacheTTLNews:   30 * time.Minute,
		CacheTTLQuote:  time.Minute,
		RequestTimeout: 2 * time.Second,
		AITimeout:      2 * time.Second,
	}
}

func TestNewsCacheMissThenHit(t *testing.T) {
	api := New(testConfig(), services.NewMemoryCache())

	do := func() (*httptest.ResponseRecorder, []byte) {
		req := httptest.NewRequest(http.MethodGet, "/api/news?assetType=stock&symbol=AAPL&timeframe=1D", nil)
		rec := httptest.NewRecorder()
		api.News(rec, req)
		return rec, rec.Body.Bytes()
	}

	first, firstBody := do()
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}
	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Fatalf("expected X-Cache MISS on first call, got %q", got)
	}

	second, secondBody := do()
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Fatalf("expected X-Cache HIT on second call, got %q", got)
	}
	if !bytes.Equal(firstBody, secondBody) {
		t.Fatalf("expected byte-identical bodies:\nfirst:  %s\nsecond: %s", firstBody, secondBody)
	}

	var result models.NewsResult
	if err := services.UnmarshalCache(secondBody, &result); err != nil {
		t.Fatalf("body not a NewsResult: %v", err)
	}
	if len(result.Articles) == 0 {
		t.Fatal("expected articles in response")
	}
}

func TestNewsDifferentParamsMissSeparately(t *testing.T) {
	api := New(testConfig(), services.NewMemoryCache())

	req := httptest.NewRequest(http.MethodGet, "/api/news?assetType=oil&symbol=WTI_USD", nil)
	rec := httptest.NewRecorder()
	api.News(rec, req)
	if got := rec.Header().Get("X-Cache"); got != "MISS" {
		t.Fatalf("expected MISS, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/news?assetType=metal&symbol=XAU", nil)
	rec = httptest.NewRecorder()
	api.News(rec, req)
	if got := rec.Header().Get("X-Cache"); got != "MISS" {
		t.Fatalf("expected MISS for different key, got %q", got)
	}
}

func TestNewsCorruptCacheEntryTreatedAsMiss(t *testing.T) {
	cache := services.NewMemoryCache()
	api := New(testConfig(), cache)

	// The facade prefixes logical keys with the configured cache version.
	key := "v1:news:stock:AAPL:1D"
	_ = cache.Set(context.Background(), key, []byte("{not json"), time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/api/news?assetType=stock&symbol=AAPL&timeframe=1D", nil)
	rec := httptest.NewRecorder()
	api.News(rec, req)
	if got := rec.Header().Get("X-Cache"); got != "MISS" {
		t.Fatalf("expected corrupt entry to read as MISS, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
