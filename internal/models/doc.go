// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

/*
Package models defines the JSON payloads of the RecoBlend HTTP API.

Every endpoint answers with the APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "request_id": "...", "query_time_ms": 3}
	}

Errors use the same envelope with status "error" and a populated error
object carrying one of the ErrorCode* constants.
*/
package models
