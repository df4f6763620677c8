// Package sealanesvc exposes a constructor for sealane-svc's
// MatrixService that benchmarks and integration tests can call without
// going through cmd/main.go's full process bootstrap.
package sealanesvc

import (
	"sealane/pkg/cache"
	"sealane/pkg/chokepoint"
	"sealane/pkg/dispatch"
	"sealane/pkg/landmask"
	"sealane/pkg/port"
	"sealane/pkg/sealane"
	"sealane/services/sealane-svc/internal/service"
)

// Dependencies collects the pre-built components a MatrixService needs.
// Callers construct these from pkg/port, pkg/chokepoint, pkg/sealane, and
// pkg/roadengine the same way cmd/main.go does.
type Dependencies struct {
	PortSnapper           *port.Snapper
	ChokepointRegistry    *chokepoint.Registry
	Graph                 *sealane.Graph
	SpatialIndex          *sealane.SpatialIndex
	RoadEngine            dispatch.RoutingEngine
	LandMask              *landmask.LandMask
	SnapCache             *cache.SnapCache
	MaxSeaSnapDistanceM   float64
	AverageSeaSpeedKnots  float64
	DefaultValidateCoords bool
}

// NewMatrixService builds a service.MatrixService from already-wired
// dependencies, hiding the internal package from external callers.
func NewMatrixService(deps Dependencies) *service.MatrixService {
	dispatcher := dispatch.NewDispatcher(
		deps.PortSnapper,
		deps.ChokepointRegistry,
		deps.Graph,
		deps.SpatialIndex,
		deps.RoadEngine,
		deps.MaxSeaSnapDistanceM,
		deps.AverageSeaSpeedKnots,
	)
	return service.NewMatrixService(dispatcher, deps.ChokepointRegistry, deps.LandMask, deps.SnapCache, deps.DefaultValidateCoords)
}
