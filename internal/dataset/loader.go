// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recoblend/internal/recommend"
)

// Config locates the dataset files.
type Config struct {
	CatalogPath      string
	ContentPath      string
	InteractionsPath string // optional

	// MaxMemory and Threads tune the DuckDB instance used while loading.
	MaxMemory string
	Threads   int
}

// LoadStats summarizes one load.
type LoadStats struct {
	CatalogRows       int
	FeatureColumns    int
	UnusedFeatureRows int
	InteractionTracks int
	InteractionUsers  int
	InteractionValues int
	Duration          time.Duration
}

// Result is the output of a successful load.
type Result struct {
	Data        recommend.SnapshotData
	Fingerprint Fingerprint
	Stats       LoadStats
}

// Loader reads dataset files into snapshot data.
type Loader struct {
	cfg    Config
	logger zerolog.Logger
}

// NewLoader creates a loader for cfg.
//
//nolint:gocritic // hugeParam: Config is passed once at startup
func NewLoader(cfg Config, logger zerolog.Logger) *Loader {
	return &Loader{
		cfg:    cfg,
		logger: logger.With().Str("component", "dataset").Logger(),
	}
}

// Fingerprint stats the dataset files without reading them.
func (l *Loader) Fingerprint() (Fingerprint, error) {
	return Stat(l.cfg.CatalogPath, l.cfg.ContentPath, l.cfg.InteractionsPath)
}

// LoadSnapshot loads the dataset and validates it into a snapshot.
func (l *Loader) LoadSnapshot(ctx context.Context) (*recommend.Snapshot, Fingerprint, error) {
	res, err := l.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	snap, err := recommend.NewSnapshot(res.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("build snapshot: %w", err)
	}
	return snap, res.Fingerprint, nil
}

// Load reads all dataset files.
//
// The fingerprint is taken before reading, so a file replaced mid-load
// shows up as changed on the next check.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	start := time.Now()

	fp, err := l.Fingerprint()
	if err != nil {
		return nil, err
	}

	db, err := openDuckDB(l.cfg.MaxMemory, l.cfg.Threads)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(db)

	// Temp tables live per connection, so the whole load runs on one.
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire duckdb connection: %w", err)
	}
	defer closeQuietly(conn)

	res := &Result{Fingerprint: fp}

	songs, err := loadCatalog(ctx, conn, l.cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	res.Data.Catalog = songs
	res.Stats.CatalogRows = len(songs)

	content, featureCols, unused, err := loadContent(ctx, conn, l.cfg.ContentPath, songs)
	if err != nil {
		return nil, err
	}
	res.Data.Content = content
	res.Stats.FeatureColumns = featureCols
	res.Stats.UnusedFeatureRows = unused

	if l.cfg.InteractionsPath != "" {
		ids, matrix, users, err := loadInteractions(ctx, conn, l.cfg.InteractionsPath)
		if err != nil {
			return nil, err
		}
		res.Data.TrackIDs = ids
		res.Data.Interactions = matrix
		res.Stats.InteractionTracks = len(ids)
		res.Stats.InteractionUsers = users
		res.Stats.InteractionValues = matrix.NNZ()
	}

	res.Data.Source = l.source()
	res.Stats.Duration = time.Since(start)

	l.logger.Info().
		Int("catalog_rows", res.Stats.CatalogRows).
		Int("feature_columns", res.Stats.FeatureColumns).
		Int("unused_feature_rows", res.Stats.UnusedFeatureRows).
		Int("interaction_tracks", res.Stats.InteractionTracks).
		Int("interaction_users", res.Stats.InteractionUsers).
		Int("interaction_values", res.Stats.InteractionValues).
		Dur("duration", res.Stats.Duration).
		Msg("Dataset loaded")

	return res, nil
}

// source lists the base names of the loaded files.
func (l *Loader) source() string {
	parts := []string{filepath.Base(l.cfg.CatalogPath), filepath.Base(l.cfg.ContentPath)}
	if l.cfg.InteractionsPath != "" {
		parts = append(parts, filepath.Base(l.cfg.InteractionsPath))
	}
	return strings.Join(parts, "+")
}

// scanStrings scans the current row into one string per column.
// NULL becomes "".
func scanStrings(rows *sql.Rows, n int) ([]string, error) {
	raw := make([]sql.NullString, n)
	dest := make([]any, n)
	for i := range raw {
		dest[i] = &raw[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i, v := range raw {
		out[i] = v.String
	}
	return out, nil
}
