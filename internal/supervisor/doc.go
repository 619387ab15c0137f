// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

/*
Package supervisor runs the long-lived RecoBlend services under suture v4.

The tree has two layers so a failing reloader never takes the API down:

	RootSupervisor ("recoblend")
	├── DataSupervisor ("data-layer")
	│   └── ReloadService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog on a log/slog logger backed by the zerolog global logger:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	tree.AddDataService(reloader)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)

Serve blocks until ctx is canceled. Services that do not stop within
TreeConfig.ShutdownTimeout are listed by UnstoppedServiceReport.
*/
package supervisor
