// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package recommend

import (
	"cmp"
	"container/heap"
	"math"
	"slices"
)

// TopK returns the indices of the n highest scores in descending order.
// Equal scores are ordered by ascending index and NaN ranks below every
// number. Fewer than n indices are returned when scores is shorter.
//
// Selection keeps a fixed-capacity min-heap of the n best rows seen so far.
func TopK(scores []float64, n int) []int {
	if n <= 0 || len(scores) == 0 {
		return []int{}
	}
	if n > len(scores) {
		n = len(scores)
	}

	h := &rowHeap{scores: scores, rows: make([]int, 0, n)}
	for i := range scores {
		switch {
		case h.Len() < n:
			heap.Push(h, i)
		case h.better(i, h.rows[0]):
			h.rows[0] = i
			heap.Fix(h, 0)
		}
	}

	slices.SortFunc(h.rows, func(a, b int) int {
		return compareRows(scores, a, b)
	})
	return h.rows
}

// compareRows orders rows by descending score, then ascending row index.
func compareRows(scores []float64, a, b int) int {
	sa, sb := rankScore(scores[a]), rankScore(scores[b])
	if sa != sb {
		return cmp.Compare(sb, sa)
	}
	return cmp.Compare(a, b)
}

func rankScore(s float64) float64 {
	if math.IsNaN(s) {
		return math.Inf(-1)
	}
	return s
}

// rowHeap is a heap.Interface over rows keyed by rank, ordered so the worst
// kept row sits at the root.
type rowHeap struct {
	scores []float64
	rows   []int
}

func (h *rowHeap) Len() int { return len(h.rows) }

// Less reports whether row i ranks below row j.
func (h *rowHeap) Less(i, j int) bool {
	return compareRows(h.scores, h.rows[i], h.rows[j]) > 0
}

func (h *rowHeap) Swap(i, j int) { h.rows[i], h.rows[j] = h.rows[j], h.rows[i] }

func (h *rowHeap) Push(x any) { h.rows = append(h.rows, x.(int)) }

func (h *rowHeap) Pop() any {
	n := len(h.rows) - 1
	row := h.rows[n]
	h.rows = h.rows[:n]
	return row
}

func (h *rowHeap) better(a, b int) bool {
	return compareRows(h.scores, a, b) < 0
}

// scoredSong pairs a catalog song with the row and score it was ranked by.
type scoredSong struct {
	song  Song
	row   int
	score float64
}

// selectTop ranks rows of scores and returns at most k songs.
//
// It selects the top k+1 rows, maps each row to a track ID through ids,
// joins the catalog by track ID (IDs without a catalog row are skipped),
// re-sorts the joined songs by descending score, drops exclude and repeated
// track IDs and truncates to k. The extra slot absorbs the query's own self-match.
func selectTop(scores []float64, ids func(row int) string, catalog *Catalog, k int, exclude string) []Song {
	top := TopK(scores, k+1)

	joined := make([]scoredSong, 0, len(top))
	for _, row := range top {
		catalogRow, ok := catalog.RowOf(ids(row))
		if !ok {
			continue
		}
		joined = append(joined, scoredSong{
			song:  catalog.Song(catalogRow),
			row:   row,
			score: scores[row],
		})
	}

	slices.SortStableFunc(joined, func(a, b scoredSong) int {
		return compareRows(scores, a.row, b.row)
	})

	out := make([]Song, 0, k)
	seen := make(map[string]struct{}, len(joined))
	for _, s := range joined {
		if s.song.TrackID == exclude {
			continue
		}
		if _, dup := seen[s.song.TrackID]; dup {
			continue
		}
		seen[s.song.TrackID] = struct{}{}
		if len(out) == k {
			break
		}
		out = append(out, s.song)
	}
	return out
}
