// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

// Package recommend implements the hybrid song recommendation core.
//
// # Architecture
//
// A recommendation blends two independent similarity signals:
//
//   - Content similarity: cosine similarity between song feature vectors,
//     addressed by catalog row.
//   - Collaborative similarity: cosine similarity between rows of the
//     interaction matrix, addressed by the identifier array.
//
// The two spaces are indexed differently. An IdentifierIndex maps a track ID
// to its interaction row, and each Snapshot carries an alignment from
// interaction rows to catalog rows, built once when the snapshot is created.
//
// # Pipeline
//
// For a (name, artist) query the Engine:
//
//  1. Resolves the catalog row and the interaction row (ErrNotFound on miss).
//  2. Computes cosine scores over the full content and interaction matrices.
//  3. Aligns content scores into interaction-row order.
//  4. Min-max normalizes each vector independently.
//  5. Fuses them as w*content + (1-w)*collaborative.
//  6. Selects the top k+1 rows, joins them to the catalog, drops the query
//     song and truncates to k.
//
// Ties among equal fused scores are broken by ascending row index.
//
// # Snapshots
//
// All matrices and the catalog live in an immutable Snapshot. The Engine
// holds the current snapshot in an atomic pointer; reloading builds a new
// snapshot and swaps it in. Requests in flight keep the snapshot they
// started with.
//
// # Usage
//
//	snap, err := recommend.NewSnapshot(recommend.SnapshotData{...})
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	engine.SwapSnapshot(snap)
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Song:   "Wonderwall",
//	    Artist: "Oasis",
//	    K:      10,
//	})
//	if errors.Is(err, recommend.ErrNotFound) {
//	    // song not in the catalog or the interaction data
//	}
//
// # Thread Safety
//
// The Engine is safe for concurrent use. Request processing reads only
// immutable snapshot data and takes no locks.
package recommend
