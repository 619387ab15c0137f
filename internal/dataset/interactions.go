// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package dataset

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/tomtom215/recoblend/internal/metrics"
	"github.com/tomtom215/recoblend/internal/recommend"
)

// interactionQuery sums play counts per (track, user) for catalog tracks.
// %s is the read_csv_auto call.
const interactionQuery = `
	SELECT
		trim(track_id) AS track_id,
		trim(user_id) AS user_id,
		SUM(CAST(playcount AS DOUBLE)) AS plays
	FROM %s
	WHERE trim(track_id) IN (SELECT trim(track_id) FROM catalog_rows)
	  AND user_id IS NOT NULL
	  AND trim(user_id) <> ''
	GROUP BY 1, 2
	HAVING SUM(CAST(playcount AS DOUBLE)) > 0
`

type triplet struct {
	track string
	user  string
	plays float64
}

// loadInteractions aggregates the listening triplets into a CSR matrix.
// It returns the identifier array, the matrix and the number of users.
func loadInteractions(ctx context.Context, conn *sql.Conn, path string) ([]string, *recommend.CSRMatrix, int, error) {
	cols, err := csvColumns(ctx, conn, path, "interactions")
	if err != nil {
		return nil, nil, 0, err
	}
	if err := requireColumns("interactions", columnIndex(cols), "track_id", "user_id", "playcount"); err != nil {
		return nil, nil, 0, err
	}

	start := time.Now()
	rows, err := conn.QueryContext(ctx, fmt.Sprintf(interactionQuery, readCSV(path)))
	metrics.RecordDBQuery("aggregate", "interactions", time.Since(start), err)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("read interactions %s: %w", path, err)
	}
	defer closeQuietly(rows)

	var triplets []triplet
	for rows.Next() {
		var t triplet
		if err := rows.Scan(&t.track, &t.user, &t.plays); err != nil {
			return nil, nil, 0, fmt.Errorf("scan interaction: %w", err)
		}
		triplets = append(triplets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, 0, fmt.Errorf("iterate interactions: %w", err)
	}

	ids, matrix, users, err := buildCSR(triplets)
	if err != nil {
		return nil, nil, 0, err
	}
	return ids, matrix, users, nil
}

// buildCSR turns aggregated triplets into a track x user CSR matrix.
// Rows are the distinct tracks and columns the distinct users, both in
// ascending order. Each (track, user) pair must appear at most once.
func buildCSR(triplets []triplet) ([]string, *recommend.CSRMatrix, int, error) {
	slices.SortFunc(triplets, func(a, b triplet) int {
		if c := cmp.Compare(a.track, b.track); c != 0 {
			return c
		}
		return cmp.Compare(a.user, b.user)
	})

	users := make([]string, len(triplets))
	for i, t := range triplets {
		users[i] = t.user
	}
	slices.Sort(users)
	users = slices.Compact(users)

	var ids []string
	indptr := []int{0}
	indices := make([]int, 0, len(triplets))
	values := make([]float64, 0, len(triplets))

	for i, t := range triplets {
		if i == 0 || t.track != triplets[i-1].track {
			if i > 0 {
				indptr = append(indptr, len(values))
			}
			ids = append(ids, t.track)
		}
		col, _ := slices.BinarySearch(users, t.user)
		indices = append(indices, col)
		values = append(values, t.plays)
	}
	if len(triplets) > 0 {
		indptr = append(indptr, len(values))
	}

	m, err := recommend.NewCSRMatrix(len(ids), len(users), indptr, indices, values)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%w: interaction matrix: %w", ErrInvalidData, err)
	}
	return ids, m, len(users), nil
}
