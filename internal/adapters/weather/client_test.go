package weather_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tourflow/internal/adapters/weather"
)

func upstreamPayload() map[string]any {
	return map[string]any{
		"name": "Athens",
		"main": map[string]any{"temp": 31.2, "humidity": 40},
		"weather": []map[string]any{
			{"description": "clear sky", "icon": "01d"},
		},
		"wind": map[string]any{"speed": 3.4},
	}
}

func TestByLocation_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			w.WriteHeader(500)
		default:
			w.WriteHeader(200)
			_ = json.NewEncoder(w).Encode(upstreamPayload())
		}
	}))
	defer ts.Close()

	cl := weather.New(ts.URL, "test-key", 100) // high RPS for tests
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rep, err := cl.ByLocation(ctx, "Athens")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.Location != "Athens" || rep.Temperature != 31.2 || rep.Description != "clear sky" {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestByLocation_NoKeyServesMock(t *testing.T) {
	cl := weather.New("http://unused", "", 100)

	rep, err := cl.ByLocation(context.Background(), "Lisbon")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.Location != "Lisbon" || rep.Description != "Partly cloudy" {
		t.Fatalf("expected mock report, got %+v", rep)
	}
}

func TestByCoords_UpstreamFailureFallsBackToMock(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl := weather.New(ts.URL, "test-key", 100)
	rep, err := cl.ByCoords(context.Background(), 38.7, -9.1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.Description != "Partly cloudy" {
		t.Fatalf("expected mock fallback, got %+v", rep)
	}
}
