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

const previewColumn = "spotify_preview_url"

// loadCatalog reads the catalog into the temp table "catalog_rows" and returns
// its songs in file order.
func loadCatalog(ctx context.Context, conn *sql.Conn, path string) ([]recommend.Song, error) {
	cols, err := csvColumns(ctx, conn, path, "catalog")
	if err != nil {
		return nil, err
	}
	idx := columnIndex(cols)
	if err := requireColumns("catalog", idx, "track_id", "name", "artist"); err != nil {
		return nil, err
	}

	start := time.Now()
	_, err = conn.ExecContext(ctx, "CREATE OR REPLACE TEMP TABLE catalog_rows AS SELECT * FROM "+readCSV(path))
	metrics.RecordDBQuery("read_csv", "catalog", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	start = time.Now()
	rows, err := conn.QueryContext(ctx, "SELECT * FROM catalog_rows")
	metrics.RecordDBQuery("select", "catalog", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer closeQuietly(rows)

	idCol, nameCol, artistCol := idx["track_id"], idx["name"], idx["artist"]
	previewCol, hasPreview := idx[previewColumn]

	var songs []recommend.Song
	for rows.Next() {
		vals, err := scanStrings(rows, len(cols))
		if err != nil {
			return nil, fmt.Errorf("scan catalog row %d: %w", len(songs)+1, err)
		}

		song := recommend.Song{
			TrackID: strings.TrimSpace(vals[idCol]),
			Name:    vals[nameCol],
			Artist:  vals[artistCol],
		}
		if song.TrackID == "" {
			return nil, fmt.Errorf("%w: catalog row %d has an empty track_id", ErrInvalidData, len(songs)+1)
		}
		if hasPreview {
			song.PreviewURL = vals[previewCol]
		}
		for i, c := range cols {
			if i == idCol || i == nameCol || i == artistCol || (hasPreview && i == previewCol) || vals[i] == "" {
				continue
			}
			if song.Extra == nil {
				song.Extra = make(map[string]string)
			}
			song.Extra[c] = vals[i]
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog: %w", err)
	}
	if len(songs) == 0 {
		return nil, fmt.Errorf("%w: catalog %s is empty", ErrInvalidData, path)
	}
	return songs, nil
}
