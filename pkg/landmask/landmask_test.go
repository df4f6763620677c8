package landmask

import (
	"testing"

	"github.com/paulmach/orb"
)

func squarePolygon(minLon, minLat, maxLon, maxLat float64) orb.Polygon {
	ring := orb.Ring{
		{minLon, minLat},
		{maxLon, minLat},
		{maxLon, maxLat},
		{minLon, maxLat},
		{minLon, minLat},
	}
	return orb.Polygon{ring}
}

func TestContains_PointInsideLand(t *testing.T) {
	m := NewFromPolygons(orb.MultiPolygon{squarePolygon(0, 0, 10, 10)})

	if !m.Contains(5, 5) {
		t.Error("expected point (5,5) inside land square to be contained")
	}
	if m.Contains(20, 20) {
		t.Error("expected point (20,20) outside land square to not be contained")
	}
}

func TestIntersects_SegmentCrossingLand(t *testing.T) {
	m := NewFromPolygons(orb.MultiPolygon{squarePolygon(0, 0, 10, 10)})

	// Segment passes straight through the square.
	if !m.Intersects(-5, 5, 15, 5) {
		t.Error("expected segment crossing land square to intersect")
	}
}

func TestIntersects_SegmentAvoidingLand(t *testing.T) {
	m := NewFromPolygons(orb.MultiPolygon{squarePolygon(0, 0, 10, 10)})

	if m.Intersects(-5, 20, 15, 20) {
		t.Error("expected segment far from land square to not intersect")
	}
}

func TestIntersects_EndpointInsideLand(t *testing.T) {
	m := NewFromPolygons(orb.MultiPolygon{squarePolygon(0, 0, 10, 10)})

	if !m.Intersects(5, 5, 50, 50) {
		t.Error("expected segment with an endpoint inside land to intersect")
	}
}

func TestLoadShapefile_MissingFile(t *testing.T) {
	_, err := LoadShapefile("/nonexistent/coastline.shp")
	if err == nil {
		t.Fatal("expected error for missing shapefile")
	}
}
