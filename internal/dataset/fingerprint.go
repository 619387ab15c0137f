// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package dataset

import (
	"fmt"
	"os"
	"time"
)

// FileStamp identifies one version of a dataset file.
type FileStamp struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Fingerprint identifies one version of the whole dataset.
type Fingerprint []FileStamp

// Stat builds a fingerprint for paths. Empty paths are skipped.
func Stat(paths ...string) (Fingerprint, error) {
	fp := make(Fingerprint, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		fp = append(fp, FileStamp{Path: p, Size: info.Size(), ModTime: info.ModTime()})
	}
	return fp, nil
}

// Equal reports whether two fingerprints describe the same files.
func (f Fingerprint) Equal(other Fingerprint) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if f[i].Path != other[i].Path || f[i].Size != other[i].Size || !f[i].ModTime.Equal(other[i].ModTime) {
			return false
		}
	}
	return true
}
