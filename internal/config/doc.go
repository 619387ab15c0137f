// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

// Package config loads RecoBlend configuration with Koanf v2.
//
// Sources are layered, later ones overriding earlier ones:
//
//  1. Built-in defaults
//  2. An optional YAML file (CONFIG_PATH, or config.yaml in the working directory)
//  3. Environment variables
//
// Only the environment variables listed in envTransformFunc are read, so
// unrelated variables never leak into the configuration.
//
// Example config.yaml:
//
//	server:
//	  port: 8080
//	data:
//	  catalog_path: /data/catalog.csv
//	  content_path: /data/content_features.csv
//	  interactions_path: /data/interactions.csv
//	recommend:
//	  allowed_k: [5, 10, 15, 20]
//	  default_mode: auto
//	reload:
//	  interval: 10m
package config
