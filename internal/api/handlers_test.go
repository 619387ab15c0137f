// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/recoblend/internal/middleware"
	"github.com/tomtom215/recoblend/internal/models"
	"github.com/tomtom215/recoblend/internal/recommend"
)

// testSnapshot has four songs. "Solo" has content features but no
// interaction data.
func testSnapshot(t *testing.T) *recommend.Snapshot {
	t.Helper()

	songs := []recommend.Song{
		{TrackID: "T1", Name: "Yesterday", Artist: "The Beatles"},
		{TrackID: "T2", Name: "Michelle", Artist: "The Beatles"},
		{TrackID: "T3", Name: "Bohemian Rhapsody", Artist: "Queen"},
		{TrackID: "T4", Name: "Solo", Artist: "Nobody"},
	}
	content, err := recommend.NewDenseMatrixFromRows([][]float64{
		{1, 0},
		{0.9, 0.1},
		{0, 1},
		{0.8, 0.2},
	})
	if err != nil {
		t.Fatalf("content matrix: %v", err)
	}
	collab, err := recommend.NewDenseMatrixFromRows([][]float64{
		{1, 1, 0},
		{1, 0, 0},
		{0, 0, 1},
	})
	if err != nil {
		t.Fatalf("collab matrix: %v", err)
	}
	snap, err := recommend.NewSnapshot(recommend.SnapshotData{
		Catalog:      songs,
		Content:      content,
		TrackIDs:     []string{"T1", "T2", "T3"},
		Interactions: collab,
		Source:       "test",
	})
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	return snap
}

type fakeReload struct{}

func (fakeReload) Status() models.ReloadInfo {
	return models.ReloadInfo{Enabled: true, BreakerState: "closed"}
}

// newTestServer returns a router around a fresh engine. When loaded is
// false the engine has no snapshot.
func newTestServer(t *testing.T, loaded bool, mwCfg *ChiMiddlewareConfig) (http.Handler, *recommend.Engine) {
	t.Helper()

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if loaded {
		engine.SwapSnapshot(testSnapshot(t))
	}

	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
	}
	h := NewHandler(engine, fakeReload{}, middleware.NewLatencyTracker(100, 0), HandlerConfig{
		RequestTimeout: 5 * time.Second,
		Version:        "test",
	})
	return NewRouter(h, NewChiMiddleware(mwCfg)), engine
}

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func doGet(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode %s response %q: %v", target, rec.Body.String(), err)
	}
	return rec, env
}

func TestRecommendations_Success(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, true, nil)
	rec, env := doGet(t, srv, "/api/v1/recommendations?song=yesterday&artist=the%20beatles&k=5&mode=hybrid")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if env.Status != "success" {
		t.Errorf("Expected success, got %s", env.Status)
	}
	if env.Metadata.RequestID == "" || env.Metadata.RequestID != rec.Header().Get("X-Request-ID") {
		t.Errorf("Expected metadata request ID to match header, got %q vs %q",
			env.Metadata.RequestID, rec.Header().Get("X-Request-ID"))
	}

	var data models.RecommendationData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
	if data.Query.TrackID != "T1" {
		t.Errorf("Expected query T1, got %s", data.Query.TrackID)
	}
	if data.Mode != "hybrid" || data.K != 5 || data.WeightContent != 0.5 {
		t.Errorf("Unexpected metadata: mode=%s k=%d weight=%v", data.Mode, data.K, data.WeightContent)
	}
	if len(data.Items) != 2 {
		t.Fatalf("Expected 2 items (all other interaction songs), got %d", len(data.Items))
	}
	if data.Items[0].TrackID != "T2" {
		t.Errorf("Expected T2 first, got %s", data.Items[0].TrackID)
	}
	for _, item := range data.Items {
		if item.TrackID == "T1" {
			t.Error("Query song must not be recommended")
		}
	}
}

func TestRecommendations_Modes(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, true, nil)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantMode   string
		wantCode   string
	}{
		{"auto falls back to content", "song=Solo&artist=Nobody&mode=auto", http.StatusOK, "content", ""},
		{"default mode is auto", "song=Solo&artist=Nobody", http.StatusOK, "content", ""},
		{"content mode", "song=Solo&artist=Nobody&mode=content", http.StatusOK, "content", ""},
		{"hybrid without interactions", "song=Solo&artist=Nobody&mode=hybrid", http.StatusNotFound, "", models.ErrorCodeSongNotFound},
		{"unknown song", "song=Unknown&artist=Nobody", http.StatusNotFound, "", models.ErrorCodeSongNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := doGet(t, srv, "/api/v1/recommendations?"+tt.query)
			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantCode != "" {
				if env.Error == nil || env.Error.Code != tt.wantCode {
					t.Errorf("Expected error code %s, got %+v", tt.wantCode, env.Error)
				}
				return
			}
			var data models.RecommendationData
			if err := json.Unmarshal(env.Data, &data); err != nil {
				t.Fatalf("Failed to decode data: %v", err)
			}
			if data.Mode != tt.wantMode {
				t.Errorf("Expected mode %s, got %s", tt.wantMode, data.Mode)
			}
			if data.WeightContent != 1 {
				t.Errorf("Expected content weight 1 for content results, got %v", data.WeightContent)
			}
		})
	}
}

func TestRecommendations_Validation(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, true, nil)

	tests := []struct {
		name  string
		query string
	}{
		{"missing song", "artist=Queen"},
		{"missing artist", "song=Yesterday"},
		{"blank song", "song=%20%20&artist=Queen"},
		{"k not an integer", "song=Yesterday&artist=The+Beatles&k=ten"},
		{"k not on menu", "song=Yesterday&artist=The+Beatles&k=7"},
		{"k above max", "song=Yesterday&artist=The+Beatles&k=50"},
		{"weight above one", "song=Yesterday&artist=The+Beatles&weight=1.5"},
		{"weight not a number", "song=Yesterday&artist=The+Beatles&weight=abc"},
		{"diversity above max", "song=Yesterday&artist=The+Beatles&diversity=11"},
		{"negative diversity", "song=Yesterday&artist=The+Beatles&diversity=-1"},
		{"unknown mode", "song=Yesterday&artist=The+Beatles&mode=random"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := doGet(t, srv, "/api/v1/recommendations?"+tt.query)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if env.Error == nil || env.Error.Code != models.ErrorCodeValidation {
				t.Errorf("Expected VALIDATION_ERROR, got %+v", env.Error)
			}
		})
	}
}

func TestRecommendations_Weights(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, true, nil)

	tests := []struct {
		query string
		want  float64
	}{
		{"weight=0.25", 0.25},
		{"diversity=2", 0.8},
		{"diversity=10", 0},
		{"weight=1&diversity=10", 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()
			rec, env := doGet(t, srv, "/api/v1/recommendations?song=Yesterday&artist=The+Beatles&mode=hybrid&"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
			}
			var data models.RecommendationData
			if err := json.Unmarshal(env.Data, &data); err != nil {
				t.Fatalf("Failed to decode data: %v", err)
			}
			if data.WeightContent != tt.want {
				t.Errorf("Expected weight %v, got %v", tt.want, data.WeightContent)
			}
		})
	}
}

func TestRecommendations_CacheHit(t *testing.T) {
	t.Parallel()

	srv, engine := newTestServer(t, true, nil)
	target := "/api/v1/recommendations?song=Yesterday&artist=The+Beatles&k=10"

	_, first := doGet(t, srv, target)
	_, second := doGet(t, srv, target)

	if first.Metadata.Cached {
		t.Error("Expected first response to be computed")
	}
	if !second.Metadata.Cached {
		t.Error("Expected second response to be cached")
	}
	if m := engine.GetMetrics(); m.CacheHits != 1 {
		t.Errorf("Expected 1 cache hit, got %d", m.CacheHits)
	}
}

func TestRecommendations_NotReady(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, false, nil)
	rec, env := doGet(t, srv, "/api/v1/recommendations?song=Yesterday&artist=The+Beatles")

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected status 503, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != models.ErrorCodeNotReady {
		t.Errorf("Expected NOT_READY, got %+v", env.Error)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, true, nil)

	t.Run("hybrid capable", func(t *testing.T) {
		t.Parallel()
		rec, env := doGet(t, srv, "/api/v1/songs/lookup?song=MICHELLE&artist=the+beatles")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}
		var data models.LookupData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("Failed to decode data: %v", err)
		}
		if data.Song.TrackID != "T2" || !data.InCollaborative || len(data.Modes) != 2 {
			t.Errorf("Unexpected lookup result %+v", data)
		}
	})

	t.Run("content only", func(t *testing.T) {
		t.Parallel()
		_, env := doGet(t, srv, "/api/v1/songs/lookup?song=Solo&artist=Nobody")
		var data models.LookupData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("Failed to decode data: %v", err)
		}
		if data.InCollaborative || !data.InContent || len(data.Modes) != 1 || data.Modes[0] != "content" {
			t.Errorf("Unexpected lookup result %+v", data)
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		rec, _ := doGet(t, srv, "/api/v1/songs/lookup?song=Nope&artist=Nobody")
		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rec.Code)
		}
	})

	t.Run("missing artist", func(t *testing.T) {
		t.Parallel()
		rec, _ := doGet(t, srv, "/api/v1/songs/lookup?song=Solo")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})
}

func TestStatus(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, true, nil)
	doGet(t, srv, "/api/v1/recommendations?song=Yesterday&artist=The+Beatles")

	rec, env := doGet(t, srv, "/api/v1/recommendations/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var data models.StatusData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
	if !data.Ready || data.Snapshot == nil || data.Snapshot.CatalogSize != 4 {
		t.Errorf("Expected ready snapshot with 4 songs, got %+v", data.Snapshot)
	}
	if data.Engine.RequestCount != 1 {
		t.Errorf("Expected 1 engine request, got %d", data.Engine.RequestCount)
	}
	if data.Reload == nil || data.Reload.BreakerState != "closed" {
		t.Errorf("Expected reload status, got %+v", data.Reload)
	}
	if len(data.Latency) == 0 {
		t.Error("Expected latency stats")
	}
	if data.DefaultMode != "auto" || len(data.AllowedK) != 4 {
		t.Errorf("Unexpected limits: mode=%s allowed_k=%v", data.DefaultMode, data.AllowedK)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv, engine := newTestServer(t, false, nil)

	rec, _ := doGet(t, srv, "/api/v1/health/live")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected live 200, got %d", rec.Code)
	}

	rec, env := doGet(t, srv, "/api/v1/health/ready")
	if rec.Code != http.StatusServiceUnavailable || env.Error == nil || env.Error.Code != models.ErrorCodeNotReady {
		t.Errorf("Expected ready 503 NOT_READY before load, got %d", rec.Code)
	}

	engine.SwapSnapshot(testSnapshot(t))
	rec, env = doGet(t, srv, "/api/v1/health/ready")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected ready 200 after load, got %d", rec.Code)
	}
	var data models.HealthData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
	if data.SnapshotVersion != engine.Snapshot().Version() {
		t.Errorf("Expected snapshot version %d, got %d", engine.Snapshot().Version(), data.SnapshotVersion)
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, true, nil)

	rec, env := doGet(t, srv, "/api/v1/nope")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != models.ErrorCodeNotFound {
		t.Errorf("Expected JSON 404, got %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, true, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected /metrics 200, got %d", rec.Code)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	srv, _ := newTestServer(t, true, cfg)

	target := "/api/v1/songs/lookup?song=Solo&artist=Nobody"
	for i := 0; i < 2; i++ {
		if rec, _ := doGet(t, srv, target); rec.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	rec, env := doGet(t, srv, target)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != models.ErrorCodeRateLimited {
		t.Errorf("Expected RATE_LIMIT_EXCEEDED, got %+v", env.Error)
	}

	// Health probes are exempt.
	if rec, _ := doGet(t, srv, "/api/v1/health/live"); rec.Code != http.StatusOK {
		t.Errorf("Expected health 200 while rate limited, got %d", rec.Code)
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	if got := sanitizeLogValue("a\nb\x7f"); got != `a\x0ab\x7f` {
		t.Errorf("Expected escaped control characters, got %q", got)
	}
}
