package dispatch

import (
	"sealane/pkg/apperror"
	"sealane/pkg/sealane"
)

// metersPerKM converts the spatial index's kilometer distances into the
// meters used throughout the dispatch and matrix boundary.
const metersPerKM = 1000.0

// SeaNodeSnapper resolves a query coordinate to the nearest sea-lane
// graph node that passes a given edge filter.
type SeaNodeSnapper struct {
	index            *sealane.SpatialIndex
	maxSnapDistanceM float64
}

// NewSeaNodeSnapper builds a snapper over index, rejecting any snap
// further than maxSnapDistanceM (meters).
func NewSeaNodeSnapper(index *sealane.SpatialIndex, maxSnapDistanceM float64) *SeaNodeSnapper {
	return &SeaNodeSnapper{index: index, maxSnapDistanceM: maxSnapDistanceM}
}

// Snap returns the nearest graph node id to (lat, lon) among nodes the
// filter accepts, failing with GRAPH_SNAP_FAILED if no node passes the
// filter or the nearest one is beyond the configured distance.
func (s *SeaNodeSnapper) Snap(lat, lon float64, filter *EdgeFilter) (nodeID int, distanceM float64, err error) {
	accept := func(id int) bool {
		return filter.AcceptNode(id)
	}

	id, distKM, ok := s.index.Nearest(lat, lon, accept)
	if !ok {
		return 0, 0, apperror.New(apperror.CodeGraphSnapFailed, "no sea-lane graph node passed the exclusion filter").
			WithDetails("lat", lat).
			WithDetails("lon", lon)
	}

	distM := distKM * metersPerKM
	if distM > s.maxSnapDistanceM {
		return 0, 0, apperror.New(apperror.CodeGraphSnapFailed, "nearest sea-lane graph node exceeds the snap distance threshold").
			WithDetails("lat", lat).
			WithDetails("lon", lon).
			WithDetails("distance_m", distM).
			WithDetails("max_snap_distance_m", s.maxSnapDistanceM)
	}

	return id, distM, nil
}
