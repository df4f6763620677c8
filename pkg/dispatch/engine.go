package dispatch

import "context"

// Mode selects which routing engine a leg is computed against.
type Mode string

const (
	ModeRoad Mode = "ROAD"
	ModeSea  Mode = "SEA"
)

// Point is a bare coordinate pair, independent of any port/graph snap.
type Point struct {
	Lat float64
	Lon float64
}

// RouteResult is the outcome of routing a single (source, target) leg.
type RouteResult struct {
	DistanceM float64
	TimeMS    int64
	Reachable bool
}

// RoutingEngine computes a single point-to-point leg. SeaEngine and
// pkg/roadengine.RoadEngine are its two implementations, selected by
// Dispatcher per request mode.
type RoutingEngine interface {
	Route(ctx context.Context, from, to Point) (RouteResult, error)
}
