// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

/*
Package main is the entry point for the RecoBlend server.

RecoBlend answers "songs like this one" by blending two cosine similarity
signals: audio content features and listener co-occurrence. The dataset is
three CSV files read through DuckDB into an immutable in-memory snapshot.

# Application Architecture

	RootSupervisor ("recoblend")
	├── DataSupervisor ("data-layer")
	│   └── ReloadService (initial load + periodic fingerprint checks)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (chi router)

Startup order:

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog in JSON or console format
 3. Engine: recommend.Engine with response cache
 4. Loader: dataset.Loader over DuckDB read_csv_auto
 5. Supervisor tree with the reload and HTTP services

The HTTP server starts before the first snapshot is loaded. Until then
/api/v1/health/ready and recommendation requests answer 503 NOT_READY.

# Configuration

	HTTP_PORT=8080
	RECOBLEND_CATALOG_PATH=/data/catalog.csv
	RECOBLEND_CONTENT_PATH=/data/content_features.csv
	RECOBLEND_INTERACTIONS_PATH=/data/interactions.csv   # empty disables hybrid mode
	RECOMMEND_DEFAULT_MODE=auto                          # hybrid, content or auto
	RECOMMEND_ALLOWED_K=5,10,15,20
	RELOAD_INTERVAL=5m
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server with a graceful shutdown bounded by HTTP_SHUTDOWN_TIMEOUT.
*/
package main
