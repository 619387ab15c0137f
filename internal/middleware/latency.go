// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package middleware

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/tomtom215/recoblend/internal/logging"
	"github.com/tomtom215/recoblend/internal/models"
)

type latencySample struct {
	route      string
	durationMS int64
}

// LatencyTracker keeps a fixed-size ring of recent request latencies and
// reports per-route percentiles over it.
type LatencyTracker struct {
	mu        sync.RWMutex
	samples   []latencySample
	next      int
	full      bool
	slowAfter time.Duration
}

// NewLatencyTracker creates a tracker holding the last window samples.
// Requests slower than slowAfter are logged at warn level; zero disables that.
func NewLatencyTracker(window int, slowAfter time.Duration) *LatencyTracker {
	if window < 1 {
		window = 1
	}
	return &LatencyTracker{
		samples:   make([]latencySample, window),
		slowAfter: slowAfter,
	}
}

// Record adds a sample.
func (lt *LatencyTracker) Record(route string, d time.Duration) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	lt.samples[lt.next] = latencySample{route: route, durationMS: d.Milliseconds()}
	lt.next++
	if lt.next == len(lt.samples) {
		lt.next = 0
		lt.full = true
	}
}

// Stats returns per-route statistics ordered by request count, busiest first.
func (lt *LatencyTracker) Stats() []models.RouteLatency {
	lt.mu.RLock()
	n := lt.next
	if lt.full {
		n = len(lt.samples)
	}
	byRoute := make(map[string][]int64)
	for _, s := range lt.samples[:n] {
		byRoute[s.route] = append(byRoute[s.route], s.durationMS)
	}
	lt.mu.RUnlock()

	stats := make([]models.RouteLatency, 0, len(byRoute))
	for route, durations := range byRoute {
		slices.Sort(durations)
		var sum int64
		for _, d := range durations {
			sum += d
		}
		stats = append(stats, models.RouteLatency{
			Route:        route,
			RequestCount: int64(len(durations)),
			AvgMS:        float64(sum) / float64(len(durations)),
			P50MS:        percentile(durations, 0.50),
			P95MS:        percentile(durations, 0.95),
			P99MS:        percentile(durations, 0.99),
			MaxMS:        durations[len(durations)-1],
		})
	}

	slices.SortFunc(stats, func(a, b models.RouteLatency) int {
		if a.RequestCount != b.RequestCount {
			if a.RequestCount > b.RequestCount {
				return -1
			}
			return 1
		}
		if a.Route < b.Route {
			return -1
		}
		if a.Route > b.Route {
			return 1
		}
		return 0
	})
	return stats
}

// Middleware records the latency of every request under its route pattern.
func (lt *LatencyTracker) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)

		route := RoutePattern(r)
		lt.Record(route, elapsed)

		if lt.slowAfter > 0 && elapsed > lt.slowAfter {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("route", route).
				Int64("duration_ms", elapsed.Milliseconds()).
				Msg("Slow request detected")
		}
	})
}

// percentile returns the nearest-rank value at p from a sorted slice.
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}
