// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package recommend

import (
	"fmt"
	"sync/atomic"
	"time"
)

// snapshotSeq numbers snapshots process-wide.
var snapshotSeq atomic.Uint64

// SnapshotData is the raw input for a Snapshot.
type SnapshotData struct {
	// Catalog is the ordered song catalog.
	Catalog []Song

	// Content has one row per catalog song, in catalog order.
	Content Matrix

	// TrackIDs is the identifier array: TrackIDs[i] labels Interactions row i.
	TrackIDs []string

	// Interactions has one row per TrackIDs entry. May be nil together with
	// an empty TrackIDs, in which case only content scoring is available.
	Interactions Matrix

	// Source describes where the data came from, for status reporting.
	Source string
}

// Snapshot is an immutable, validated dataset. It is safe for concurrent use.
type Snapshot struct {
	version  uint64
	loadedAt time.Time
	source   string

	catalog      *Catalog
	content      Matrix
	ids          *IdentifierIndex
	interactions Matrix

	// alignment[i] is the catalog row of interaction row i.
	alignment []int
}

// SnapshotStats summarizes a snapshot.
type SnapshotStats struct {
	Version          uint64    `json:"version"`
	LoadedAt         time.Time `json:"loaded_at"`
	Source           string    `json:"source,omitempty"`
	CatalogSize      int       `json:"catalog_size"`
	ContentFeatures  int       `json:"content_features"`
	InteractionRows  int       `json:"interaction_rows"`
	InteractionUsers int       `json:"interaction_users"`
}

// NewSnapshot validates data and builds the identifier index and the
// interaction-to-catalog alignment. It fails with ErrShapeMismatch when the
// content matrix is not row-aligned with the catalog, when the interaction
// matrix is not row-aligned with the identifier array, when the identifier
// array repeats a track ID, or when an interaction track ID has no catalog
// row.
//
//nolint:gocritic // hugeParam: data passed by value for immutability
func NewSnapshot(data SnapshotData) (*Snapshot, error) {
	if data.Content == nil {
		return nil, fmt.Errorf("%w: content matrix is required", ErrShapeMismatch)
	}
	if data.Content.Rows() != len(data.Catalog) {
		return nil, fmt.Errorf("%w: content matrix has %d rows, catalog has %d songs",
			ErrShapeMismatch, data.Content.Rows(), len(data.Catalog))
	}

	interactionRows := 0
	if data.Interactions != nil {
		interactionRows = data.Interactions.Rows()
	}
	if interactionRows != len(data.TrackIDs) {
		return nil, fmt.Errorf("%w: interaction matrix has %d rows, identifier array has %d entries",
			ErrShapeMismatch, interactionRows, len(data.TrackIDs))
	}

	catalog := NewCatalog(data.Catalog)
	alignment := make([]int, len(data.TrackIDs))
	seen := make(map[string]int, len(data.TrackIDs))
	for i, id := range data.TrackIDs {
		if first, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: interaction track %q repeats at rows %d and %d",
				ErrShapeMismatch, id, first, i)
		}
		seen[id] = i

		row, ok := catalog.RowOf(id)
		if !ok {
			return nil, fmt.Errorf("%w: interaction track %q has no catalog row", ErrShapeMismatch, id)
		}
		alignment[i] = row
	}

	return &Snapshot{
		version:      snapshotSeq.Add(1),
		loadedAt:     time.Now(),
		source:       data.Source,
		catalog:      catalog,
		content:      data.Content,
		ids:          NewIdentifierIndex(data.TrackIDs),
		interactions: data.Interactions,
		alignment:    alignment,
	}, nil
}

// Version returns the process-unique snapshot number.
func (s *Snapshot) Version() uint64 { return s.version }

// LoadedAt returns when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Catalog returns the snapshot catalog.
func (s *Snapshot) Catalog() *Catalog { return s.catalog }

// Stats summarizes the snapshot.
func (s *Snapshot) Stats() SnapshotStats {
	stats := SnapshotStats{
		Version:         s.version,
		LoadedAt:        s.loadedAt,
		Source:          s.source,
		CatalogSize:     s.catalog.Len(),
		ContentFeatures: s.content.Cols(),
		InteractionRows: s.ids.Len(),
	}
	if s.interactions != nil {
		stats.InteractionUsers = s.interactions.Cols()
	}
	return stats
}

// resolve locates the query song in both index spaces. It fails with
// ErrNotFound before touching any matrix.
func (s *Snapshot) resolve(name, artist string) (song Song, contentRow, interactionRow int, err error) {
	contentRow, ok := s.catalog.Find(name, artist)
	if !ok {
		return Song{}, 0, 0, fmt.Errorf("%w: %q by %q is not in the catalog", ErrNotFound, name, artist)
	}
	song = s.catalog.Song(contentRow)

	interactionRow, ok = s.ids.Row(song.TrackID)
	if !ok {
		return song, contentRow, 0, fmt.Errorf("%w: track %q has no interaction data", ErrNotFound, song.TrackID)
	}
	return song, contentRow, interactionRow, nil
}

// hybrid runs the blended pipeline for the query song.
func (s *Snapshot) hybrid(name, artist string, k int, weightContent float64) (Song, []Song, error) {
	song, contentRow, interactionRow, err := s.resolve(name, artist)
	if err != nil {
		return song, nil, err
	}

	contentAll, err := CosineScores(s.content, contentRow)
	if err != nil {
		return song, nil, fmt.Errorf("content similarity: %w", err)
	}
	collab, err := CosineScores(s.interactions, interactionRow)
	if err != nil {
		return song, nil, fmt.Errorf("collaborative similarity: %w", err)
	}

	// Bring content scores into interaction-row order.
	content := make([]float64, len(s.alignment))
	for i, row := range s.alignment {
		content[i] = contentAll[row]
	}

	fused, err := Fuse(MinMaxNormalize(content), MinMaxNormalize(collab), weightContent)
	if err != nil {
		return song, nil, fmt.Errorf("fuse scores: %w", err)
	}

	return song, selectTop(fused, s.ids.ID, s.catalog, k, song.TrackID), nil
}

// contentOnly ranks the full catalog by content similarity.
func (s *Snapshot) contentOnly(name, artist string, k int) (Song, []Song, error) {
	row, ok := s.catalog.Find(name, artist)
	if !ok {
		return Song{}, nil, fmt.Errorf("%w: %q by %q is not in the catalog", ErrNotFound, name, artist)
	}
	song := s.catalog.Song(row)

	scores, err := CosineScores(s.content, row)
	if err != nil {
		return song, nil, fmt.Errorf("content similarity: %w", err)
	}

	trackID := func(r int) string { return s.catalog.Song(r).TrackID }
	return song, selectTop(scores, trackID, s.catalog, k, song.TrackID), nil
}

// lookup reports where a song is available.
func (s *Snapshot) lookup(name, artist string) (LookupResult, error) {
	row, ok := s.catalog.Find(name, artist)
	if !ok {
		return LookupResult{}, fmt.Errorf("%w: %q by %q is not in the catalog", ErrNotFound, name, artist)
	}
	song := s.catalog.Song(row)
	_, inCollab := s.ids.Row(song.TrackID)

	return LookupResult{
		Song:            song,
		InContent:       true,
		InCollaborative: inCollab,
	}, nil
}
