// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func TestLatencyTracker_Stats(t *testing.T) {
	t.Parallel()

	lt := NewLatencyTracker(100, 0)
	for i := 1; i <= 10; i++ {
		lt.Record("/a", time.Duration(i)*time.Millisecond)
	}
	lt.Record("/b", 50*time.Millisecond)

	stats := lt.Stats()
	if len(stats) != 2 {
		t.Fatalf("Expected 2 routes, got %d", len(stats))
	}
	a := stats[0]
	if a.Route != "/a" || a.RequestCount != 10 {
		t.Fatalf("Expected /a with 10 requests first, got %+v", a)
	}
	if a.P50MS != 5 {
		t.Errorf("Expected p50 5ms, got %d", a.P50MS)
	}
	if a.MaxMS != 10 {
		t.Errorf("Expected max 10ms, got %d", a.MaxMS)
	}
	if a.AvgMS != 5.5 {
		t.Errorf("Expected avg 5.5ms, got %v", a.AvgMS)
	}
}

func TestLatencyTracker_WindowEvictsOldest(t *testing.T) {
	t.Parallel()

	lt := NewLatencyTracker(3, 0)
	lt.Record("/old", time.Millisecond)
	for i := 0; i < 3; i++ {
		lt.Record("/new", time.Millisecond)
	}

	stats := lt.Stats()
	if len(stats) != 1 || stats[0].Route != "/new" || stats[0].RequestCount != 3 {
		t.Errorf("Expected only 3 samples of /new, got %+v", stats)
	}
}

func TestLatencyTracker_Empty(t *testing.T) {
	t.Parallel()

	if stats := NewLatencyTracker(0, 0).Stats(); len(stats) != 0 {
		t.Errorf("Expected no stats, got %+v", stats)
	}
}

func TestLatencyTracker_Middleware(t *testing.T) {
	t.Parallel()

	lt := NewLatencyTracker(10, time.Nanosecond)
	r := chi.NewRouter()
	r.Use(lt.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/1", nil))
		}()
	}
	wg.Wait()

	stats := lt.Stats()
	if len(stats) != 1 || stats[0].Route != "/items/{id}" || stats[0].RequestCount != 5 {
		t.Errorf("Expected 5 samples of /items/{id}, got %+v", stats)
	}
}
