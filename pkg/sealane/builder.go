package sealane

import (
	"math"
	"time"

	"github.com/google/uuid"

	"sealane/pkg/apperror"
	"sealane/pkg/chokepoint"
	"sealane/pkg/geo"
	"sealane/pkg/landmask"
	"sealane/pkg/logger"
)

// ChokepointSpec is one entry of the mandatory chokepoint catalog: a
// named maritime strait or canal, its center, and its densification
// parameters.
type ChokepointSpec struct {
	ID            string
	Name          string
	Region        string
	Lat           float64
	Lon           float64
	RadiusDegrees float64
	StepDegrees   float64
}

// MandatoryChokepoints is the hard-coded catalog of chokepoints every
// build must tag and densify around, in catalog order (the order used
// to break tagging ties in Stage 2).
var MandatoryChokepoints = []ChokepointSpec{
	{ID: "SUEZ", Name: "Suez Canal", Region: "AFRICA", Lat: 30.8123, Lon: 32.3179, RadiusDegrees: 2.0, StepDegrees: 0.5},
	{ID: "PANAMA", Name: "Panama Canal", Region: "AMERICAS", Lat: 9.0832, Lon: -79.6776, RadiusDegrees: 2.0, StepDegrees: 0.5},
	{ID: "MALACCA", Name: "Strait of Malacca", Region: "ASIA", Lat: 2.5, Lon: 101.0, RadiusDegrees: 3.0, StepDegrees: 0.5},
	{ID: "GIBRALTAR", Name: "Strait of Gibraltar", Region: "EUROPE", Lat: 35.9429, Lon: -5.6147, RadiusDegrees: 2.0, StepDegrees: 0.5},
	{ID: "BOSPHORUS", Name: "Bosphorus Strait", Region: "EUROPE", Lat: 41.0976, Lon: 29.0606, RadiusDegrees: 2.0, StepDegrees: 0.5},
	{ID: "CAPE_GOOD_HOPE", Name: "Cape of Good Hope", Region: "AFRICA", Lat: -34.3532, Lon: 18.2282, RadiusDegrees: 3.0, StepDegrees: 1.0},
	{ID: "BAB_EL_MANDEB", Name: "Bab-el-Mandeb", Region: "MIDDLE_EAST", Lat: 12.6, Lon: 43.3, RadiusDegrees: 2.0, StepDegrees: 0.5},
	{ID: "HORMUZ", Name: "Strait of Hormuz", Region: "MIDDLE_EAST", Lat: 26.5, Lon: 56.3, RadiusDegrees: 2.0, StepDegrees: 0.5},
}

const (
	latBound            = 80.0
	lonBound            = 180.0
	tagRadiusMultiplier = 2.0
	knn                 = 6
)

// BuildConfig parameterizes one offline sea-lane graph build.
type BuildConfig struct {
	OutputDir          string
	LandMaskPath       string
	GridStepDegrees    float64
	StrictConnectivity bool
}

// BuildSummary reports the outcome of a build, per the persisted
// build_summary.json schema.
type BuildSummary struct {
	SeaGraphVersion                    string  `json:"sea_graph_version"`
	NodeCount                          int     `json:"node_count"`
	EdgeCount                          int     `json:"edge_count"`
	ConnectedComponentCount            int     `json:"connected_component_count"`
	LargestComponentSize               int     `json:"largest_component_size"`
	BuildDurationMS                    int64   `json:"build_duration_ms"`
	WaypointGridStepDegrees            float64 `json:"waypoint_grid_step_degrees"`
	ChokepointDensificationStepDegrees float64 `json:"chokepoint_densification_step_degrees"`
	LandMaskSource                     string  `json:"land_mask_source"`
	BuildTimestamp                     string  `json:"build_timestamp"`
}

// waypoint is an internal candidate graph node tracked through the
// pipeline before land filtering re-indexes the survivors.
type waypoint struct {
	Lat          float64
	Lon          float64
	ChokepointID string
}

// LandSource is the land-geometry query surface the builder depends on.
// *landmask.LandMask satisfies it; tests substitute a synthetic
// implementation to avoid needing a real shapefile on disk.
type LandSource interface {
	Contains(lon, lat float64) bool
	Intersects(lon1, lat1, lon2, lat2 float64) bool
}

// Builder runs the offline sea-lane graph construction pipeline.
type Builder struct {
	cfg BuildConfig
}

// NewBuilder creates a Builder for the given configuration.
func NewBuilder(cfg BuildConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Build runs all ten pipeline stages and persists the resulting graph,
// chokepoint metadata sidecar, and build summary under cfg.OutputDir.
func (b *Builder) Build() (*BuildSummary, error) {
	if b.cfg.GridStepDegrees <= 0 {
		return nil, apperror.New(apperror.CodeInvalidConfig, "grid_step_degrees must be positive").
			WithDetails("grid_step_degrees", b.cfg.GridStepDegrees)
	}

	mask, err := landmask.LoadShapefile(b.cfg.LandMaskPath)
	if err != nil {
		return nil, err
	}

	return b.BuildFromMask(mask)
}

// BuildFromMask runs the pipeline against an already-loaded land
// source, skipping Stage 1's shapefile acquisition. Production code
// reaches this only through Build; tests call it directly with a
// synthetic LandSource.
func (b *Builder) BuildFromMask(mask LandSource) (*BuildSummary, error) {
	runID := uuid.NewString()
	start := time.Now()

	logger.Log.Info("sea-lane graph build starting",
		"build_id", runID,
		"grid_step_degrees", b.cfg.GridStepDegrees,
		"land_mask_path", b.cfg.LandMaskPath,
	)

	waypoints := generateGrid(b.cfg.GridStepDegrees)
	waypoints = append(waypoints, densifyChokepoints()...)

	surviving := filterLand(waypoints, mask)

	g := NewGraph()
	for i, w := range surviving {
		g.AddNode(i, w.Lat, w.Lon)
		if w.ChokepointID != "" {
			g.SetChokepoint(i, w.ChokepointID)
		}
	}

	candidates := make([]geo.Point, len(surviving))
	for i, w := range surviving {
		candidates[i] = geo.Point{Lat: w.Lat, Lon: w.Lon}
	}

	edgesInserted := 0
	for u := range surviving {
		neighbors := geo.KNearest(surviving[u].Lat, surviving[u].Lon, candidates, u, knn)
		for _, nb := range neighbors {
			v := nb.Index
			if rejectsLandCrossing(surviving[u], surviving[v], mask) {
				continue
			}
			weightMeters := nb.DistanceKM * 1000.0
			if g.AddEdge(u, v, weightMeters) {
				edgesInserted++
			}
		}
	}

	chokepointNodes := buildChokepointNodeMap(g)

	components := FindConnectedComponents(g)
	largest, _ := LargestComponent(g)
	componentCount := len(components)

	if componentCount > 1 {
		logger.Log.Warn("sea-lane graph is not fully connected",
			"build_id", runID,
			"component_count", componentCount,
			"largest_component_size", largest,
		)
		if b.cfg.StrictConnectivity {
			return nil, apperror.New(apperror.CodeConnectivityInvariantViolated, "sea-lane graph failed connectivity invariant").
				WithDetails("component_count", componentCount).
				WithDetails("largest_component_size", largest)
		}
	}

	registry := chokepoint.New()
	for _, spec := range MandatoryChokepoints {
		nodeIDs := make([]int, 0, len(chokepointNodes[spec.ID]))
		for id := range chokepointNodes[spec.ID] {
			nodeIDs = append(nodeIDs, id)
		}
		registry.Add(chokepoint.Chokepoint{
			ID:            spec.ID,
			Name:          spec.Name,
			Region:        spec.Region,
			Lat:           spec.Lat,
			Lon:           spec.Lon,
			RadiusDegrees: spec.RadiusDegrees,
			StepDegrees:   spec.StepDegrees,
			NodeIDs:       nodeIDs,
		})
	}

	duration := time.Since(start)
	summary := &BuildSummary{
		NodeCount:                          g.NodeCount(),
		EdgeCount:                          g.EdgeCount(),
		ConnectedComponentCount:            componentCount,
		LargestComponentSize:               largest,
		BuildDurationMS:                    duration.Milliseconds(),
		WaypointGridStepDegrees:            b.cfg.GridStepDegrees,
		ChokepointDensificationStepDegrees: minChokepointStep(),
		LandMaskSource:                     b.cfg.LandMaskPath,
		BuildTimestamp:                     start.UTC().Format(time.RFC3339),
	}

	if err := persist(b.cfg.OutputDir, g, registry, summary); err != nil {
		return nil, err
	}

	logger.Log.Info("sea-lane graph build complete",
		"build_id", runID,
		"node_count", summary.NodeCount,
		"edge_count", summary.EdgeCount,
		"component_count", componentCount,
		"duration_ms", summary.BuildDurationMS,
	)

	return summary, nil
}

// generateGrid produces Stage 2's primary waypoint grid, tagging each
// point with the first chokepoint (in catalog order) within
// tagRadiusMultiplier * step degrees, planar L2. Planar degree distance
// is an approximation that grows coarser toward ±80° latitude.
func generateGrid(step float64) []waypoint {
	var points []waypoint

	latSteps := int(math.Round((2*latBound)/step)) + 1
	lonSteps := int(math.Round(360.0 / step))

	for i := 0; i < latSteps; i++ {
		lat := -latBound + float64(i)*step
		if lat > latBound {
			lat = latBound
		}
		for j := 0; j < lonSteps; j++ {
			lon := -lonBound + float64(j)*step

			w := waypoint{Lat: lat, Lon: lon}
			w.ChokepointID = tagChokepoint(lat, lon, step)
			points = append(points, w)
		}
	}
	return points
}

func tagChokepoint(lat, lon, step float64) string {
	threshold := tagRadiusMultiplier * step
	for _, cp := range MandatoryChokepoints {
		dLat := lat - cp.Lat
		dLon := lon - cp.Lon
		if math.Sqrt(dLat*dLat+dLon*dLon) <= threshold {
			return cp.ID
		}
	}
	return ""
}

// densifyChokepoints produces Stage 3's local dense grids around each
// mandatory chokepoint, plus the chokepoint centers themselves.
func densifyChokepoints() []waypoint {
	var points []waypoint

	for _, cp := range MandatoryChokepoints {
		steps := int(math.Round(cp.RadiusDegrees / cp.StepDegrees))

		for di := -steps; di <= steps; di++ {
			dLat := float64(di) * cp.StepDegrees
			for dj := -steps; dj <= steps; dj++ {
				dLon := float64(dj) * cp.StepDegrees
				if dLat == 0 && dLon == 0 {
					continue
				}
				if math.Sqrt(dLat*dLat+dLon*dLon) > cp.RadiusDegrees {
					continue
				}

				lat := clampLat(cp.Lat + dLat)
				lon := normalizeLon(cp.Lon + dLon)

				points = append(points, waypoint{Lat: lat, Lon: lon, ChokepointID: cp.ID})
			}
		}

		points = append(points, waypoint{Lat: cp.Lat, Lon: cp.Lon, ChokepointID: cp.ID})
	}
	return points
}

func clampLat(lat float64) float64 {
	if lat > latBound {
		return latBound
	}
	if lat < -latBound {
		return -latBound
	}
	return lat
}

func normalizeLon(lon float64) float64 {
	for lon >= lonBound {
		lon -= 360
	}
	for lon < -lonBound {
		lon += 360
	}
	return lon
}

// filterLand applies Stage 4: discard waypoints inside land, then
// re-index the survivors densely from zero, preserving order.
func filterLand(points []waypoint, mask LandSource) []waypoint {
	surviving := make([]waypoint, 0, len(points))
	for _, w := range points {
		if mask.Contains(w.Lon, w.Lat) {
			continue
		}
		surviving = append(surviving, w)
	}
	return surviving
}

// rejectsLandCrossing implements Stage 6: true if the great-circle
// segment between u and v crosses land, splitting at the antimeridian
// when necessary.
func rejectsLandCrossing(u, v waypoint, mask LandSource) bool {
	if !geo.CrossesAntimeridian(u.Lon, v.Lon) {
		return mask.Intersects(u.Lon, u.Lat, v.Lon, v.Lat)
	}

	seg1, seg2 := geo.SplitAntimeridian(u.Lat, u.Lon, v.Lat, v.Lon)
	if mask.Intersects(seg1[0].Lon, seg1[0].Lat, seg1[1].Lon, seg1[1].Lat) {
		return true
	}
	return mask.Intersects(seg2[0].Lon, seg2[0].Lat, seg2[1].Lon, seg2[1].Lat)
}

// buildChokepointNodeMap implements Stage 8. A node tagged with a
// chokepoint ID during Stage 2 or Stage 3 is only admitted into that
// chokepoint's node set if it actually lies within the chokepoint's own
// RadiusDegrees. Stage 2's tagging threshold (tagRadiusMultiplier * grid
// step) is a coarse candidate filter, not the radius invariant itself,
// and can be wider than RadiusDegrees for a coarse grid step.
func buildChokepointNodeMap(g *Graph) map[string]map[int]bool {
	centers := make(map[string]ChokepointSpec, len(MandatoryChokepoints))
	for _, cp := range MandatoryChokepoints {
		centers[cp.ID] = cp
	}

	result := make(map[string]map[int]bool)

	g.mu.RLock()
	defer g.mu.RUnlock()

	for id, n := range g.Nodes {
		if n.ChokepointID == "" {
			continue
		}
		cp, ok := centers[n.ChokepointID]
		if !ok {
			continue
		}
		dLat := n.Lat - cp.Lat
		dLon := n.Lon - cp.Lon
		if math.Sqrt(dLat*dLat+dLon*dLon) > cp.RadiusDegrees {
			continue
		}
		if result[n.ChokepointID] == nil {
			result[n.ChokepointID] = make(map[int]bool)
		}
		result[n.ChokepointID][id] = true
	}
	return result
}

func minChokepointStep() float64 {
	min := math.MaxFloat64
	for _, cp := range MandatoryChokepoints {
		if cp.StepDegrees < min {
			min = cp.StepDegrees
		}
	}
	return min
}
