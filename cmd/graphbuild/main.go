// Command graphbuild runs the offline Sea-Lane Graph Builder (C5): grid
// generation, land filtering, k-NN densification, land-crossing
// rejection, connectivity validation, and persistence. It is a one-shot
// tool, not a long-running service. sealane-svc only ever loads its
// output via sealane.LoadGraph.
package main

import (
	"flag"

	"sealane/pkg/config"
	"sealane/pkg/logger"
	"sealane/pkg/sealane"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.InitWithConfig(logger.Config{Level: "info", Format: "json", Output: "stdout"})
		logger.Fatal("failed to load config", "error", err)
	}

	logger.InitWithConfig(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})

	outputDir := flag.String("output-dir", cfg.GraphBuilder.OutputDir, "directory to write graph.json, location_index.json, chokepoint_metadata.json and build_summary.json into")
	landMaskPath := flag.String("land-mask", cfg.GraphBuilder.LandMaskPath, "path to the land-polygon shapefile")
	gridStep := flag.Float64("grid-step-degrees", cfg.GraphBuilder.GridStepDegrees, "waypoint grid spacing in degrees")
	strict := flag.Bool("strict-connectivity", cfg.GraphBuilder.StrictConnectivity, "fail the build if the graph is not a single connected component")
	flag.Parse()

	builder := sealane.NewBuilder(sealane.BuildConfig{
		OutputDir:          *outputDir,
		LandMaskPath:       *landMaskPath,
		GridStepDegrees:    *gridStep,
		StrictConnectivity: *strict,
	})

	summary, err := builder.Build()
	if err != nil {
		logger.Fatal("sea-lane graph build failed", "error", err)
	}

	logger.Info("sea-lane graph build finished",
		"sea_graph_version", summary.SeaGraphVersion,
		"node_count", summary.NodeCount,
		"edge_count", summary.EdgeCount,
		"connected_component_count", summary.ConnectedComponentCount,
		"largest_component_size", summary.LargestComponentSize,
		"build_duration_ms", summary.BuildDurationMS,
	)
}
