// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/recoblend/internal/metrics"
	"github.com/tomtom215/recoblend/internal/recommend"
)

// loadContent reads the feature file and returns a dense matrix in catalog
// order, the number of feature columns and the number of feature rows whose
// track is not in the catalog.
func loadContent(ctx context.Context, conn *sql.Conn, path string, songs []recommend.Song) (*recommend.DenseMatrix, int, int, error) {
	cols, err := csvColumns(ctx, conn, path, "content")
	if err != nil {
		return nil, 0, 0, err
	}
	idx := columnIndex(cols)
	if err := requireColumns("content", idx, "track_id"); err != nil {
		return nil, 0, 0, err
	}

	idCol := idx["track_id"]
	exprs := []string{"trim(" + quoteIdent(cols[idCol]) + ")"}
	var features []string
	for i, c := range cols {
		if i == idCol {
			continue
		}
		features = append(features, c)
		exprs = append(exprs, "CAST("+quoteIdent(c)+" AS DOUBLE)")
	}
	if len(features) == 0 {
		return nil, 0, 0, fmt.Errorf("%w: content file %s has no feature columns", ErrInvalidData, path)
	}

	start := time.Now()
	rows, err := conn.QueryContext(ctx, "SELECT "+strings.Join(exprs, ", ")+" FROM "+readCSV(path))
	metrics.RecordDBQuery("read_csv", "content", time.Since(start), err)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("read content features %s: %w", path, err)
	}
	defer closeQuietly(rows)

	byTrack := make(map[string][]float64)
	var id sql.NullString
	raw := make([]sql.NullFloat64, len(features))
	dest := make([]any, 0, len(features)+1)
	dest = append(dest, &id)
	for i := range raw {
		dest = append(dest, &raw[i])
	}

	line := 0
	for rows.Next() {
		line++
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, 0, fmt.Errorf("scan content row %d: %w", line, err)
		}
		if id.String == "" {
			return nil, 0, 0, fmt.Errorf("%w: content row %d has an empty track_id", ErrInvalidData, line)
		}
		if _, seen := byTrack[id.String]; seen {
			continue
		}
		vec := make([]float64, len(features))
		for j, v := range raw {
			if !v.Valid {
				return nil, 0, 0, fmt.Errorf("%w: content row %d has no value for %q", ErrInvalidData, line, features[j])
			}
			vec[j] = v.Float64
		}
		byTrack[id.String] = vec
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("iterate content features: %w", err)
	}

	data := make([]float64, 0, len(songs)*len(features))
	used := make(map[string]bool, len(songs))
	for _, s := range songs {
		vec, ok := byTrack[s.TrackID]
		if !ok {
			return nil, 0, 0, fmt.Errorf("%w: %s (%s - %s)", ErrMissingFeatures, s.TrackID, s.Artist, s.Name)
		}
		used[s.TrackID] = true
		data = append(data, vec...)
	}

	m, err := recommend.NewDenseMatrix(len(songs), len(features), data)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("build content matrix: %w", err)
	}
	return m, len(features), len(byTrack) - len(used), nil
}
