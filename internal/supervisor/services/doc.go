// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

/*
Package services provides the suture.Service implementations run by the
RecoBlend supervisor tree.

HTTPServerService adapts the blocking ListenAndServe/Shutdown lifecycle of
*http.Server to suture's Serve(ctx) model with a bounded graceful shutdown.

ReloadService keeps the recommendation snapshot in sync with the dataset
files. On every tick it stats the files and, when their fingerprint changed,
loads a new snapshot through DuckDB and swaps it into the engine. Loads run
behind a gobreaker circuit breaker so a persistently broken dataset is not
re-read on every tick; the previous snapshot keeps serving meanwhile.

Both services implement fmt.Stringer so suture events name them.
*/
package services
