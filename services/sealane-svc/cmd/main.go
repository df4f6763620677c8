// Command sealane-svc is the entry point for the sea-lane routing
// service: it loads the UN/LOCODE seaport registry and the offline-built
// sea-lane graph, wires the port snapper (C3), chokepoint registry (C4),
// and chokepoint-aware dispatch (C6) together, and serves them behind a
// gRPC health/reflection endpoint plus a JSON matrix API.
//
// # Configuration
//
// Configuration is loaded with the following priority (highest to lowest):
//  1. Environment variables (prefix: SEALANE_)
//  2. Config files (config.yaml, config/config.yaml, /etc/sealane/config.yaml)
//  3. Default values (pkg/config/loader.go)
//
// # Graceful shutdown
//
// SIGINT/SIGTERM triggers the gRPC server's own graceful shutdown
// sequence (pkg/server); the HTTP matrix API is shut down immediately
// afterward.
package main

import (
	"log"

	"sealane/pkg/cache"
	"sealane/pkg/chokepoint"
	"sealane/pkg/config"
	"sealane/pkg/dispatch"
	"sealane/pkg/landmask"
	"sealane/pkg/logger"
	"sealane/pkg/metrics"
	"sealane/pkg/port"
	"sealane/pkg/roadengine"
	"sealane/pkg/sealane"
	"sealane/pkg/server"
	"sealane/services/sealane-svc/internal/service"
)

func main() {
	cfg, err := config.LoadWithServiceDefaults("sealane-svc", 50062)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	metrics.InitMetrics(cfg.Metrics.Namespace, cfg.App.Name)

	// =========================================================================
	// Port registry + snapper (C2, C3)
	// =========================================================================
	ports, err := port.LoadSeaports(cfg.Seaports.CSVPaths...)
	if err != nil {
		logger.Fatal("failed to load seaport registry", "error", err)
	}
	if len(ports) == 0 {
		logger.Fatal("seaport registry loaded zero ports", "paths", cfg.Seaports.CSVPaths)
	}
	portSnapper := port.NewSnapper(ports, cfg.Coordinates.MaxSnapDistanceKM)
	logger.Info("Seaport registry loaded", "count", len(ports))

	// =========================================================================
	// Chokepoint registry (C4)
	// =========================================================================
	registry, err := chokepoint.LoadFrom(cfg.Chokepoints.MetadataPath)
	if err != nil {
		logger.Fatal("failed to load chokepoint registry", "error", err)
	}
	logger.Info("Chokepoint registry loaded", "count", registry.Size())

	// =========================================================================
	// Sea-lane graph (C5, offline build output loaded read-only)
	// =========================================================================
	graph, versionHash, err := sealane.LoadGraph(cfg.SeaLaneGraph.DataDir)
	if err != nil {
		logger.Fatal("failed to load sea-lane graph", "error", err)
	}
	if cfg.SeaLaneGraph.ExpectedHash != "" && cfg.SeaLaneGraph.ExpectedHash != versionHash {
		logger.Fatal("sea-lane graph version hash mismatch",
			"expected", cfg.SeaLaneGraph.ExpectedHash, "actual", versionHash)
	}
	spatialIdx := sealane.NewSpatialIndex(graph)
	logger.Info("Sea-lane graph loaded",
		"nodes", graph.NodeCount(), "edges", graph.EdgeCount(), "version_hash", versionHash)

	// =========================================================================
	// Land mask (optional, used only for the validate_coordinates request flag)
	// =========================================================================
	var mask *landmask.LandMask
	if cfg.GraphBuilder.LandMaskPath != "" {
		mask, err = landmask.LoadShapefile(cfg.GraphBuilder.LandMaskPath)
		if err != nil {
			logger.Log.Warn("land mask unavailable, validate_coordinates requests will be accepted unchecked",
				"error", err)
			mask = nil
		}
	}

	// =========================================================================
	// Snap cache (optional)
	// =========================================================================
	var snapCache *cache.SnapCache
	if cfg.Cache.Enabled {
		baseCache, err := cache.New(cache.FromConfig(&cfg.Cache))
		if err != nil {
			logger.Log.Warn("failed to create snap cache, continuing without it", "error", err)
		} else {
			snapCache = cache.NewSnapCache(baseCache, cfg.Cache.DefaultTTL)
			logger.Info("Snap cache initialized", "driver", cfg.Cache.Driver, "ttl", cfg.Cache.DefaultTTL)
		}
	}

	// =========================================================================
	// Dispatch (C6) and the Matrix service
	// =========================================================================
	roadEngine := roadengine.NewRoadEngine(cfg.RoadEngine.BaseURL, cfg.RoadEngine.Timeout)
	dispatcher := dispatch.NewDispatcher(
		portSnapper,
		registry,
		graph,
		spatialIdx,
		roadEngine,
		cfg.GraphBuilder.MaxSeaSnapDistanceM,
		cfg.Dispatch.AverageSeaSpeedKnots,
	)
	matrixService := service.NewMatrixService(dispatcher, registry, mask, snapCache, cfg.HTTP.ValidateCoordinates)

	// =========================================================================
	// HTTP matrix API (no protobuf surface is available to generate a gRPC
	// Matrix RPC from; see DESIGN.md)
	// =========================================================================
	httpServer := service.NewHTTPServer(matrixService, cfg.HTTP.Port)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil {
			logger.Log.Error("HTTP matrix API stopped", "error", err)
		}
	}()

	// =========================================================================
	// gRPC server (health + reflection only)
	// =========================================================================
	srv := server.New(cfg)

	logger.Info("Starting sea-lane routing service",
		"grpc_port", cfg.GRPC.Port,
		"http_port", cfg.HTTP.Port,
		"environment", cfg.App.Environment,
		"version", cfg.App.Version,
	)

	if err := srv.Run(); err != nil {
		_ = httpServer.Shutdown()
		logger.Fatal("server failed", "error", err)
	}

	if err := httpServer.Shutdown(); err != nil {
		logger.Log.Warn("HTTP matrix API shutdown error", "error", err)
	}
}
