// Package geo provides the great-circle distance primitives used by the
// port snapper and the sea-lane graph builder: plain Haversine distance,
// an antimeridian-aware variant, and a k-nearest-neighbor candidate search.
package geo

import "math"

// EarthRadiusKM is the sphere radius used for all Haversine computations.
const EarthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKM * c
}

// AntimeridianHaversineKM returns the shorter of the plain Haversine
// distance and the distances obtained by wrapping the second point's
// longitude by ±360°, so that pairs straddling the dateline (e.g. Shanghai
// and Los Angeles) are not over-measured by a naive longitude delta.
func AntimeridianHaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	direct := HaversineKM(lat1, lon1, lat2, lon2)
	wrappedPlus := HaversineKM(lat1, lon1, lat2, lon2+360)
	wrappedMinus := HaversineKM(lat1, lon1, lat2, lon2-360)

	return math.Min(direct, math.Min(wrappedPlus, wrappedMinus))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Neighbor is one candidate returned by KNearest, paired with its
// antimeridian-aware distance from the query point.
type Neighbor struct {
	Index      int
	DistanceKM float64
}

// KNearest returns the k closest points to (lat, lon) among candidates,
// using antimeridian-aware Haversine distance, sorted ascending by
// distance and breaking ties by candidate index (scan order). The query
// point's own index, if present among candidates, should be excluded by
// the caller via selfIndex (pass -1 to include everything).
func KNearest(lat, lon float64, candidates []Point, selfIndex, k int) []Neighbor {
	neighbors := make([]Neighbor, 0, len(candidates))
	for i, c := range candidates {
		if i == selfIndex {
			continue
		}
		d := AntimeridianHaversineKM(lat, lon, c.Lat, c.Lon)
		neighbors = append(neighbors, Neighbor{Index: i, DistanceKM: d})
	}

	sortNeighbors(neighbors)

	if k >= 0 && k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors
}

// Point is a plain decimal-degree coordinate, used where importing the
// coordinate package's parsing concerns would be unnecessary.
type Point struct {
	Lat float64
	Lon float64
}

// sortNeighbors performs a stable ascending sort by distance, falling
// back to index order for exact ties (insertion sort; candidate counts
// per waypoint are small enough that O(n^2) is irrelevant next to the
// distance computations that dominate KNearest).
func sortNeighbors(ns []Neighbor) {
	for i := 1; i < len(ns); i++ {
		j := i
		for j > 0 && less(ns[j], ns[j-1]) {
			ns[j], ns[j-1] = ns[j-1], ns[j]
			j--
		}
	}
}

func less(a, b Neighbor) bool {
	if a.DistanceKM != b.DistanceKM {
		return a.DistanceKM < b.DistanceKM
	}
	return a.Index < b.Index
}

// CrossesAntimeridian reports whether a segment between two longitudes
// should be treated as dateline-crossing per spec: |v.lon - u.lon| > 180.
func CrossesAntimeridian(lonU, lonV float64) bool {
	d := lonV - lonU
	if d < 0 {
		d = -d
	}
	return d > 180
}

// SplitAntimeridian splits a dateline-crossing segment into two
// sub-segments at ±180° using the midpoint heuristic: the latitude at the
// split is the mean of the endpoints' latitudes, and the longitude is
// clamped to the correct sign of 180 on each side.
func SplitAntimeridian(uLat, uLon, vLat, vLon float64) (seg1, seg2 [2]Point) {
	midLat := (uLat + vLat) / 2.0

	uSign := 180.0
	if uLon < 0 {
		uSign = -180.0
	}
	vSign := 180.0
	if vLon < 0 {
		vSign = -180.0
	}

	seg1 = [2]Point{{Lat: uLat, Lon: uLon}, {Lat: midLat, Lon: uSign}}
	seg2 = [2]Point{{Lat: midLat, Lon: vSign}, {Lat: vLat, Lon: vLon}}
	return seg1, seg2
}
