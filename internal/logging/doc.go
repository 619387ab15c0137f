// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

// Package logging provides centralized zerolog-based structured logging for RecoBlend.
//
// JSON output is the default for production; console output is available for
// development. Request and correlation IDs stored in a context are attached
// automatically by Ctx.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:   "info",
//	    Format:  "json",
//	    Service: "recoblend",
//	    Version: version,
//	})
//
//	logging.Info().Str("catalog", path).Msg("Loading dataset")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Recommendation failed")
//
// # Supervision
//
// NewSlogLogger adapts the global logger to log/slog so that sutureslog can
// report supervisor events through zerolog.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
