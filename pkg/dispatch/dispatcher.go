package dispatch

import (
	"context"

	"sealane/pkg/chokepoint"
	"sealane/pkg/port"
	"sealane/pkg/sealane"
)

// Dispatcher implements the per-request mode dispatch of C6: it decides,
// leg by leg, whether to route over the sea graph (snapping both
// endpoints to seaports and then to graph nodes, honoring a chokepoint
// exclusion set) or to forward unchanged to an external road engine.
type Dispatcher struct {
	portSnapper *port.Snapper
	registry    *chokepoint.Registry
	graph       *sealane.Graph
	spatialIdx  *sealane.SpatialIndex
	roadEngine  RoutingEngine

	maxSeaSnapDistanceM  float64
	averageSeaSpeedKnots float64
}

// NewDispatcher wires C3's port snapper, C4's chokepoint registry, C5's
// graph and spatial index, and an external road engine into one
// dispatcher.
func NewDispatcher(
	portSnapper *port.Snapper,
	registry *chokepoint.Registry,
	graph *sealane.Graph,
	spatialIdx *sealane.SpatialIndex,
	roadEngine RoutingEngine,
	maxSeaSnapDistanceM float64,
	averageSeaSpeedKnots float64,
) *Dispatcher {
	return &Dispatcher{
		portSnapper:          portSnapper,
		registry:             registry,
		graph:                graph,
		spatialIdx:           spatialIdx,
		roadEngine:           roadEngine,
		maxSeaSnapDistanceM:  maxSeaSnapDistanceM,
		averageSeaSpeedKnots: averageSeaSpeedKnots,
	}
}

// ResolvePortSnap invokes C3 for a single input point. Callers choose
// role by whether the point's index appears in the request's sources
// list; the snap logic itself is identical for both roles.
func (d *Dispatcher) ResolvePortSnap(lat, lon float64, role port.Role) (port.SnapResult, error) {
	return d.portSnapper.Snap(lat, lon, role)
}

// RouteLeg computes one (source, target) leg under mode. ROAD legs
// bypass C3–C6 entirely and are forwarded unchanged to the road engine.
// SEA legs perform port snapping on both endpoints, build an edge filter
// from excludedChokepoints, and delegate to the internal shortest-path
// routine over the sea-lane graph.
func (d *Dispatcher) RouteLeg(ctx context.Context, mode Mode, from, to Point, excludedChokepoints []string) (RouteResult, error) {
	if mode == ModeRoad {
		return d.roadEngine.Route(ctx, from, to)
	}
	return d.routeSeaLeg(ctx, from, to, excludedChokepoints)
}

func (d *Dispatcher) routeSeaLeg(ctx context.Context, from, to Point, excludedChokepoints []string) (RouteResult, error) {
	fromSnap, err := d.portSnapper.Snap(from.Lat, from.Lon, port.RolePortOfLoading)
	if err != nil {
		return RouteResult{}, err
	}
	toSnap, err := d.portSnapper.Snap(to.Lat, to.Lon, port.RolePortOfDischarge)
	if err != nil {
		return RouteResult{}, err
	}

	filter := NewEdgeFilterFromChokepoints(excludedChokepoints, d.registry)
	nodeSnapper := NewSeaNodeSnapper(d.spatialIdx, d.maxSeaSnapDistanceM)
	engine := NewSeaEngine(d.graph, nodeSnapper, filter, d.averageSeaSpeedKnots)

	return engine.Route(ctx, Point{Lat: fromSnap.Lat, Lon: fromSnap.Lon}, Point{Lat: toSnap.Lat, Lon: toSnap.Lon})
}
