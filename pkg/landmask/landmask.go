// Package landmask loads the land-polygon dataset used to reject
// waypoints and edges of the sea-lane graph that fall on or cross land.
package landmask

import (
	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"sealane/pkg/apperror"
)

// LandMask wraps the unioned land polygon set and answers point and
// segment containment/intersection queries in lon/lat (EPSG:4326) space.
type LandMask struct {
	polygons orb.MultiPolygon
}

// LoadShapefile reads the polygon dataset at path and builds a LandMask
// from it. Fails with CodeLandMaskLoadFailed if the file is missing,
// unreadable, or yields zero polygons.
func LoadShapefile(path string) (*LandMask, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeLandMaskLoadFailed, "failed to open land mask shapefile").
			WithDetails("path", path)
	}
	defer reader.Close()

	var polygons orb.MultiPolygon

	for reader.Next() {
		_, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}
		orbPoly := polygonToOrb(poly)
		if len(orbPoly) > 0 {
			polygons = append(polygons, orbPoly)
		}
	}

	if len(polygons) == 0 {
		return nil, apperror.New(apperror.CodeLandMaskLoadFailed, "land mask shapefile contains no polygons").
			WithDetails("path", path)
	}

	return &LandMask{polygons: polygons}, nil
}

// polygonToOrb converts a shp.Polygon's parts into an orb.Polygon, one
// ring per part.
func polygonToOrb(poly *shp.Polygon) orb.Polygon {
	var result orb.Polygon

	parts := append(poly.Parts, int32(len(poly.Points)))
	for i := 0; i < len(parts)-1; i++ {
		start, end := parts[i], parts[i+1]
		if end <= start {
			continue
		}
		ring := make(orb.Ring, 0, end-start)
		for _, p := range poly.Points[start:end] {
			ring = append(ring, orb.Point{p.X, p.Y})
		}
		result = append(result, ring)
	}
	return result
}

// NewFromPolygons builds a LandMask directly from an already-assembled
// polygon set, used by tests and by callers that load geometry through
// a different front end.
func NewFromPolygons(polygons orb.MultiPolygon) *LandMask {
	return &LandMask{polygons: polygons}
}

// Contains reports whether (lon, lat) falls inside any land polygon.
func (m *LandMask) Contains(lon, lat float64) bool {
	pt := orb.Point{lon, lat}
	for _, poly := range m.polygons {
		if planar.PolygonContains(poly, pt) {
			return true
		}
	}
	return false
}

// Intersects reports whether the segment from (lon1, lat1) to (lon2,
// lat2) crosses the boundary of any land polygon, or has either endpoint
// inside one.
func (m *LandMask) Intersects(lon1, lat1, lon2, lat2 float64) bool {
	a := orb.Point{lon1, lat1}
	b := orb.Point{lon2, lat2}

	if m.Contains(lon1, lat1) || m.Contains(lon2, lat2) {
		return true
	}

	for _, poly := range m.polygons {
		for _, ring := range poly {
			if ringIntersectsSegment(ring, a, b) {
				return true
			}
		}
	}
	return false
}

func ringIntersectsSegment(ring orb.Ring, a, b orb.Point) bool {
	n := len(ring)
	for i := 0; i < n; i++ {
		p1 := ring[i]
		p2 := ring[(i+1)%n]
		if segmentsIntersect(a, b, p1, p2) {
			return true
		}
	}
	return false
}

// segmentsIntersect reports whether segment p1-p2 intersects segment
// p3-p4, using the standard orientation/straddle test.
func segmentsIntersect(p1, p2, p3, p4 orb.Point) bool {
	d1 := orientation(p3, p4, p1)
	d2 := orientation(p3, p4, p2)
	d3 := orientation(p1, p2, p3)
	d4 := orientation(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}

	return false
}

func orientation(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func onSegment(a, b, p orb.Point) bool {
	return min(a[0], b[0]) <= p[0] && p[0] <= max(a[0], b[0]) &&
		min(a[1], b[1]) <= p[1] && p[1] <= max(a[1], b[1])
}
