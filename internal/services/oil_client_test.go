package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketpulse/gateway-go/internal/config"
)

func TestOilClientSyntheticWithoutKey(t *testing.T) {
	c := NewOilClient(config.Config{RequestTimeout: time.Second})
	data := c.Candles(context.Background(), "WTI_USD", "1D")
	if len(data) != 78 {
		t.Fatalf("expected 78 synthetic points for 1D, got %d", len(data))
	}
}

func TestOilClientNormalizesAndSorts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Token k" {
			t.Errorf("expected token auth header, got %q", got)
		}
		_, _ = w.Write([]byte(`{
			"status": "success",
			"data": {"prices": [
				{"price": 79.10, "code": "WTI_USD", "created_at": "2026-08-22T12:00:00Z"},
				{"price": 78.40, "code": "WTI_USD", "created_at": "2026-08-22T10:00:00Z"}
			]}
		}`))
	}))
	defer srv.Close()

	c := NewOilClient(config.Config{OilAPIKey: "k", RequestTimeout: time.Second})
	c.baseURL = srv.URL

	data := c.Candles(context.Background(), "WTI_USD", "1D")
	if len(data) != 2 {
		t.Fatalf("expected 2 points, got %d", len(data))
	}
	if data[0].Close != 78.40 || data[1].Close != 79.10 {
		t.Fatalf("expected chronological order, got %+v", data)
	}
	if data[0].Open != nil {
		t.Fatal("oil points carry close only")
	}
}

func TestOilClientEmptiesSeriesOnMissingCriticalField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": "success",
			"data": {"prices": [
				{"price": 79.10, "code": "WTI_USD", "created_at": "2026-08-22T12:00:00Z"},
				{"price": 0, "code": "WTI_USD", "created_at": "2026-08-22T10:00:00Z"}
			]}
		}`))
	}))
	defer srv.Close()

	c := NewOilClient(config.Config{OilAPIKey: "k", RequestTimeout: time.Second})
	c.baseURL = srv.URL

	data, err := c.fetch(context.Background(), "WTI_USD", "1D")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty series on missing critical field, got %d points", len(data))
	}
}

func TestOilClientSyntheticOnUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewOilClient(config.Config{OilAPIKey: "k", RequestTimeout: time.Second})
	c.baseURL = srv.URL

	data := c.Candles(context.Background(), "BRENT_CRUDE_USD", "1W")
	if len(data) != 168 {
		t.Fatalf("expected 168 synthetic points after provider failure, got %d", len(data))
	}
}
