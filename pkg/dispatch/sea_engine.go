package dispatch

import (
	"context"

	"sealane/pkg/sealane"
)

// knotsToKMH converts a speed in knots to kilometers per hour.
const knotsToKMH = 1.852

// SeaEngine implements RoutingEngine over the persisted sea-lane graph,
// honoring a fixed edge filter for the lifetime of one request.
type SeaEngine struct {
	graph       *sealane.Graph
	nodeSnapper *SeaNodeSnapper
	filter      *EdgeFilter
	avgSpeedKMH float64
}

// NewSeaEngine builds a SeaEngine scoped to a single request's exclusion
// filter. averageSpeedKnots converts the graph's meter distances into an
// estimated transit time.
func NewSeaEngine(graph *sealane.Graph, nodeSnapper *SeaNodeSnapper, filter *EdgeFilter, averageSpeedKnots float64) *SeaEngine {
	return &SeaEngine{
		graph:       graph,
		nodeSnapper: nodeSnapper,
		filter:      filter,
		avgSpeedKMH: averageSpeedKnots * knotsToKMH,
	}
}

// Route snaps from and to onto the nearest admissible sea-lane graph
// nodes and returns the shortest filtered path between them.
func (e *SeaEngine) Route(ctx context.Context, from, to Point) (RouteResult, error) {
	fromNode, _, err := e.nodeSnapper.Snap(from.Lat, from.Lon, e.filter)
	if err != nil {
		return RouteResult{}, err
	}
	toNode, _, err := e.nodeSnapper.Snap(to.Lat, to.Lon, e.filter)
	if err != nil {
		return RouteResult{}, err
	}

	distM, reachable := sealane.ShortestPath(ctx, e.graph, e.filter.AcceptNode, fromNode, toNode)
	if !reachable {
		return RouteResult{Reachable: false}, nil
	}

	hours := (distM / 1000.0) / e.avgSpeedKMH
	timeMS := int64(hours * 3600.0 * 1000.0)

	return RouteResult{DistanceM: distM, TimeMS: timeMS, Reachable: true}, nil
}
