// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

/*
Package dataset loads the RecoBlend CSV files into recommendation snapshots.

The files are parsed and aggregated by an in-memory DuckDB instance through
read_csv_auto, so type casting, filtering and the play count aggregation all
happen in SQL:

  - catalog.csv: track_id, name, artist, optional spotify_preview_url and any
    further columns (kept as extra metadata). Row order is catalog order.
  - content_features.csv: track_id followed by numeric feature columns.
    Rows are re-ordered into catalog order; every catalog song needs one.
  - interactions.csv: track_id, user_id, playcount triplets. Play counts are
    summed per (track, user); tracks missing from the catalog are dropped.
    Interaction rows are the distinct track IDs in ascending order and
    columns are the distinct users in ascending order.

The interactions file is optional. Without it the snapshot only serves
content-based recommendations.

Each load also records a Fingerprint (size and modification time of every
file) so the reloader can skip unchanged datasets.
*/
package dataset
