// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/recoblend/internal/dataset"
	"github.com/tomtom215/recoblend/internal/logging"
	"github.com/tomtom215/recoblend/internal/metrics"
	"github.com/tomtom215/recoblend/internal/models"
	"github.com/tomtom215/recoblend/internal/recommend"
)

// Reload outcomes, as reported to metrics.
const (
	ReloadSuccess   = "success"
	ReloadError     = "error"
	ReloadUnchanged = "unchanged"
	ReloadRejected  = "rejected"
)

// reloadBreakerName labels the breaker in metrics and logs.
const reloadBreakerName = "dataset-reload"

// SnapshotLoader reads the dataset. Satisfied by *dataset.Loader.
type SnapshotLoader interface {
	Fingerprint() (dataset.Fingerprint, error)
	LoadSnapshot(ctx context.Context) (*recommend.Snapshot, dataset.Fingerprint, error)
}

// SnapshotSwapper publishes snapshots. Satisfied by *recommend.Engine.
type SnapshotSwapper interface {
	SwapSnapshot(snap *recommend.Snapshot) *recommend.Snapshot
	Ready() bool
}

// ReloadConfig holds reload settings.
type ReloadConfig struct {
	// Enabled turns periodic checks on. The initial load always runs.
	Enabled bool

	// Interval between fingerprint checks. Default: 5m.
	Interval time.Duration

	// LoadTimeout bounds one load. Default: 2m.
	LoadTimeout time.Duration

	// BreakerFailures is the number of consecutive failed loads that opens
	// the breaker. Default: 3.
	BreakerFailures uint32

	// BreakerTimeout is how long the breaker stays open. Default: 10m.
	BreakerTimeout time.Duration
}

func (c ReloadConfig) withDefaults() ReloadConfig {
	if c.Interval <= 0 {
		c.Interval = 5 * time.Minute
	}
	if c.LoadTimeout <= 0 {
		c.LoadTimeout = 2 * time.Minute
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = 3
	}
	if c.BreakerTimeout <= 0 {
		c.BreakerTimeout = 10 * time.Minute
	}
	return c
}

// ReloadService loads the dataset at startup and reloads it when the files
// change.
type ReloadService struct {
	loader SnapshotLoader
	engine SnapshotSwapper
	config ReloadConfig
	logger zerolog.Logger
	cb     *gobreaker.CircuitBreaker[*reloadResult]
	name   string

	// check serializes Check calls.
	check sync.Mutex

	mu          sync.RWMutex
	fingerprint dataset.Fingerprint
	lastAttempt time.Time
	lastSuccess time.Time
	lastError   string
}

type reloadResult struct {
	snap        *recommend.Snapshot
	fingerprint dataset.Fingerprint
}

// NewReloadService creates a reload service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloadService(loader SnapshotLoader, engine SnapshotSwapper, cfg ReloadConfig, logger zerolog.Logger) *ReloadService {
	cfg = cfg.withDefaults()
	s := &ReloadService{
		loader: loader,
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "reload").Logger(),
		name:   "snapshot-reload",
	}

	metrics.CircuitBreakerState.WithLabelValues(reloadBreakerName).Set(0)
	s.cb = gobreaker.NewCircuitBreaker[*reloadResult](gobreaker.Settings{
		Name:        reloadBreakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Reload circuit breaker state changed")
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	})
	return s
}

// Serve implements suture.Service. It loads immediately when the engine has
// no snapshot, then checks on every interval when reloading is enabled.
func (s *ReloadService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("enabled", s.config.Enabled).
		Dur("interval", s.config.Interval).
		Msg("Reload service starting")

	if !s.engine.Ready() {
		if _, err := s.Check(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Initial dataset load failed, retrying on schedule")
		}
	}

	if !s.config.Enabled && s.engine.Ready() {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Reload service shutting down")
			return ctx.Err()

		case <-ticker.C:
			// Without reloading, keep retrying only until a first snapshot loads.
			if !s.config.Enabled && s.engine.Ready() {
				continue
			}
			if _, err := s.Check(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("Dataset reload failed, keeping current snapshot")
			}
		}
	}
}

// Check reloads the dataset when its fingerprint differs from the one of the
// served snapshot. It reports whether a new snapshot was swapped in. On
// failure the current snapshot stays in place.
func (s *ReloadService) Check(ctx context.Context) (bool, error) {
	s.check.Lock()
	defer s.check.Unlock()

	ctx = logging.ContextWithNewCorrelationID(ctx)
	logger := logging.Ctx(ctx).With().Str("service", "reload").Logger()
	start := time.Now()

	fp, err := s.loader.Fingerprint()
	if err != nil {
		s.recordFailure(start, err)
		return false, fmt.Errorf("stat dataset: %w", err)
	}

	s.mu.RLock()
	unchanged := s.engine.Ready() && fp.Equal(s.fingerprint)
	s.mu.RUnlock()
	if unchanged {
		metrics.RecordSnapshotLoad(ReloadUnchanged, 0)
		logger.Debug().Msg("Dataset unchanged")
		return false, nil
	}

	res, err := s.cb.Execute(func() (*reloadResult, error) {
		loadCtx, cancel := context.WithTimeout(ctx, s.config.LoadTimeout)
		defer cancel()

		snap, loaded, err := s.loader.LoadSnapshot(loadCtx)
		if err != nil {
			return nil, err
		}
		return &reloadResult{snap: snap, fingerprint: loaded}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordSnapshotLoad(ReloadRejected, 0)
			s.setError(start, err)
			return false, fmt.Errorf("dataset reload skipped: %w", err)
		}
		s.recordFailure(start, err)
		return false, fmt.Errorf("load dataset: %w", err)
	}

	previous := s.engine.SwapSnapshot(res.snap)
	stats := res.snap.Stats()
	metrics.RecordSnapshotSwap(metrics.SnapshotDimensions{
		Version:          stats.Version,
		CatalogSize:      stats.CatalogSize,
		ContentFeatures:  stats.ContentFeatures,
		InteractionRows:  stats.InteractionRows,
		InteractionUsers: stats.InteractionUsers,
	})
	metrics.RecordSnapshotLoad(ReloadSuccess, time.Since(start))

	s.mu.Lock()
	s.fingerprint = res.fingerprint
	s.lastAttempt = start
	s.lastSuccess = time.Now()
	s.lastError = ""
	s.mu.Unlock()

	event := logger.Info().
		Uint64("version", stats.Version).
		Int("catalog_size", stats.CatalogSize).
		Int("interaction_rows", stats.InteractionRows).
		Dur("duration", time.Since(start))
	if previous != nil {
		event = event.Uint64("previous_version", previous.Version())
	}
	event.Msg("Snapshot swapped")

	return true, nil
}

// Status reports the reload state for the status endpoint.
func (s *ReloadService) Status() models.ReloadInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info := models.ReloadInfo{
		Enabled:      s.config.Enabled,
		BreakerState: s.cb.State().String(),
		LastError:    s.lastError,
	}
	if !s.lastAttempt.IsZero() {
		t := s.lastAttempt
		info.LastAttempt = &t
	}
	if !s.lastSuccess.IsZero() {
		t := s.lastSuccess
		info.LastSuccess = &t
	}
	return info
}

// String names the service in supervisor events.
func (s *ReloadService) String() string {
	return s.name
}

func (s *ReloadService) recordFailure(start time.Time, err error) {
	metrics.RecordSnapshotLoad(ReloadError, time.Since(start))
	s.setError(start, err)
}

func (s *ReloadService) setError(start time.Time, err error) {
	s.mu.Lock()
	s.lastAttempt = start
	s.lastError = err.Error()
	s.mu.Unlock()
}
