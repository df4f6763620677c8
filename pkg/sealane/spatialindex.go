package sealane

import (
	"math"
	"sync"

	"sealane/pkg/geo"
)

// cellDegrees is the bucket size of the location index used for
// nearest-node snap queries at runtime, so a query scans rings of cells
// around the query point rather than the whole node set. The builder's
// k=6 neighbor search does not use this index.
const cellDegrees = 2.0

type cellKey struct {
	lat int
	lon int
}

// SpatialIndex buckets graph nodes onto a coarse lat/lon grid to answer
// nearest-node queries without a linear scan over the whole graph.
type SpatialIndex struct {
	mu      sync.RWMutex
	buckets map[cellKey][]int
	nodes   map[int]*Node
}

// NewSpatialIndex builds an index over every node currently in g.
func NewSpatialIndex(g *Graph) *SpatialIndex {
	idx := &SpatialIndex{
		buckets: make(map[cellKey][]int),
		nodes:   make(map[int]*Node),
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	for id, n := range g.Nodes {
		idx.nodes[id] = n
		key := cellOf(n.Lat, n.Lon)
		idx.buckets[key] = append(idx.buckets[key], id)
	}
	return idx
}

func cellOf(lat, lon float64) cellKey {
	return cellKey{
		lat: int(math.Floor(lat / cellDegrees)),
		lon: int(math.Floor(lon / cellDegrees)),
	}
}

// Nearest returns the nearest node id to (lat, lon) whose id passes
// accept (nil accepts everything), and its antimeridian-aware distance
// in kilometers. ok is false if no node passes the filter.
func (idx *SpatialIndex) Nearest(lat, lon float64, accept func(id int) bool) (nodeID int, distanceKM float64, ok bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	center := cellOf(lat, lon)
	best := -1
	bestDist := math.MaxFloat64

	// Expand the search ring outward until a candidate is found, then
	// scan exactly one further ring before stopping, guaranteeing the
	// true nearest node is not missed when it sits just across a
	// bucket boundary from the query point.
	extraRingsScanned := 0
	for ring := 0; ring < maxRings; ring++ {
		for dLat := -ring; dLat <= ring; dLat++ {
			for dLon := -ring; dLon <= ring; dLon++ {
				if ring > 0 && abs(dLat) != ring && abs(dLon) != ring {
					continue
				}
				key := cellKey{lat: center.lat + dLat, lon: center.lon + dLon}
				for _, id := range idx.buckets[key] {
					if accept != nil && !accept(id) {
						continue
					}
					n := idx.nodes[id]
					d := geo.AntimeridianHaversineKM(lat, lon, n.Lat, n.Lon)
					if d < bestDist {
						bestDist = d
						best = id
					}
				}
			}
		}
		if best != -1 {
			if extraRingsScanned >= 1 {
				break
			}
			extraRingsScanned++
		}
	}

	if best == -1 {
		return 0, 0, false
	}
	return best, bestDist, true
}

// maxRings bounds the search radius so a query over a sparse or empty
// index terminates instead of scanning forever.
const maxRings = 180 / int(cellDegrees)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
