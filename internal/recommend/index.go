// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package recommend

import "strings"

// Catalog is an ordered, immutable collection of songs.
// Row position addresses the content feature matrix.
type Catalog struct {
	songs     []Song
	byKey     map[string]int
	byTrackID map[string]int
}

// NewCatalog indexes songs by normalized (name, artist) and by track ID.
// When keys collide the first row wins. The slice is copied.
func NewCatalog(songs []Song) *Catalog {
	c := &Catalog{
		songs:     make([]Song, len(songs)),
		byKey:     make(map[string]int, len(songs)),
		byTrackID: make(map[string]int, len(songs)),
	}
	copy(c.songs, songs)

	for row, s := range c.songs {
		key := lookupKey(s.Name, s.Artist)
		if _, exists := c.byKey[key]; !exists {
			c.byKey[key] = row
		}
		if _, exists := c.byTrackID[s.TrackID]; !exists {
			c.byTrackID[s.TrackID] = row
		}
	}
	return c
}

// Len returns the number of songs.
func (c *Catalog) Len() int { return len(c.songs) }

// Song returns the song at row.
func (c *Catalog) Song(row int) Song { return c.songs[row] }

// Find returns the first row matching name and artist after trimming and
// lower-casing both.
func (c *Catalog) Find(name, artist string) (int, bool) {
	row, ok := c.byKey[lookupKey(name, artist)]
	return row, ok
}

// RowOf returns the first row holding trackID.
func (c *Catalog) RowOf(trackID string) (int, bool) {
	row, ok := c.byTrackID[trackID]
	return row, ok
}

// IdentifierIndex maps track IDs to interaction matrix rows and back.
type IdentifierIndex struct {
	ids  []string
	rows map[string]int
}

// NewIdentifierIndex builds the index over ids. Position i of ids is the
// interaction row of ids[i]; a repeated ID resolves to its first row.
func NewIdentifierIndex(ids []string) *IdentifierIndex {
	x := &IdentifierIndex{
		ids:  make([]string, len(ids)),
		rows: make(map[string]int, len(ids)),
	}
	copy(x.ids, ids)

	for row, id := range x.ids {
		if _, exists := x.rows[id]; !exists {
			x.rows[id] = row
		}
	}
	return x
}

// Len returns the number of identifiers.
func (x *IdentifierIndex) Len() int { return len(x.ids) }

// ID returns the identifier at row.
func (x *IdentifierIndex) ID(row int) string { return x.ids[row] }

// Row returns the interaction row of id.
func (x *IdentifierIndex) Row(id string) (int, bool) {
	row, ok := x.rows[id]
	return row, ok
}

// NormalizeKey trims and lower-cases a name or artist for matching.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func lookupKey(name, artist string) string {
	return NormalizeKey(name) + "\x00" + NormalizeKey(artist)
}
