// Package service implements sealane-svc's domain surface: a single
// Matrix operation layering C3's port snapper and C6's chokepoint-aware
// dispatch over a sources x targets grid of coordinates.
package service

import (
	"context"
	"strings"
	"time"

	"sealane/pkg/apperror"
	"sealane/pkg/cache"
	"sealane/pkg/chokepoint"
	"sealane/pkg/dispatch"
	"sealane/pkg/landmask"
	"sealane/pkg/logger"
	"sealane/pkg/metrics"
	"sealane/pkg/port"
)

const maxUnpolarLatitude = 80.0

// Point is one coordinate pair on the wire, independent of role.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// MatrixRequest is the JSON request body for POST /v1/matrix.
type MatrixRequest struct {
	Sources             []Point  `json:"sources"`
	Targets             []Point  `json:"targets"`
	Mode                string   `json:"mode,omitempty"`
	ExcludedChokepoints []string `json:"excluded_chokepoints,omitempty"`
	ValidateCoordinates *bool    `json:"validate_coordinates,omitempty"`
}

// PortSnapDTO is the wire form of a port.SnapResult.
type PortSnapDTO struct {
	UNLOCODE   string  `json:"unlocode,omitempty"`
	Name       string  `json:"name,omitempty"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	QueryLat   float64 `json:"query_lat"`
	QueryLon   float64 `json:"query_lon"`
	DistanceKM float64 `json:"distance_km"`
	Method     string  `json:"method,omitempty"`
	Role       string  `json:"role,omitempty"`
}

// LegResult is one (source, target) cell of the response matrix.
type LegResult struct {
	DistanceM float64 `json:"distance_m"`
	TimeMS    int64   `json:"time_ms"`
	Reachable bool    `json:"reachable"`
}

// MatrixResponse is the JSON response body for POST /v1/matrix.
type MatrixResponse struct {
	Mode                string        `json:"mode"`
	ExcludedChokepoints []string      `json:"excluded_chokepoints"`
	PortSnaps           []PortSnapDTO `json:"port_snaps,omitempty"`
	Legs                [][]LegResult `json:"legs"`
}

// MatrixService resolves Matrix requests against the dispatcher, adding
// request validation, chokepoint-id canonicalization, and snap
// memoization that sit outside C3–C6's own contracts.
type MatrixService struct {
	dispatcher            *dispatch.Dispatcher
	registry              *chokepoint.Registry
	landMask              *landmask.LandMask
	snapCache             *cache.SnapCache
	defaultValidateCoords bool
}

// NewMatrixService wires a Dispatcher and chokepoint registry into a
// request-serving MatrixService. landMask and snapCache are optional
// (nil disables land validation and snap memoization respectively).
func NewMatrixService(
	dispatcher *dispatch.Dispatcher,
	registry *chokepoint.Registry,
	landMask *landmask.LandMask,
	snapCache *cache.SnapCache,
	defaultValidateCoords bool,
) *MatrixService {
	return &MatrixService{
		dispatcher:            dispatcher,
		registry:              registry,
		landMask:              landMask,
		snapCache:             snapCache,
		defaultValidateCoords: defaultValidateCoords,
	}
}

// Solve computes a full sources x targets matrix for req.
func (s *MatrixService) Solve(ctx context.Context, req MatrixRequest) (*MatrixResponse, error) {
	if len(req.Sources) == 0 || len(req.Targets) == 0 {
		return nil, apperror.New(apperror.CodeInvalidArgument, "sources and targets must each contain at least one point")
	}

	mode := dispatch.ModeRoad
	if strings.EqualFold(req.Mode, "sea") {
		mode = dispatch.ModeSea
	}

	validateCoords := s.defaultValidateCoords
	if req.ValidateCoordinates != nil {
		validateCoords = *req.ValidateCoordinates
	}

	allPoints := make([]Point, 0, len(req.Sources)+len(req.Targets))
	allPoints = append(allPoints, req.Sources...)
	allPoints = append(allPoints, req.Targets...)

	for _, p := range allPoints {
		if err := s.validatePoint(p, validateCoords); err != nil {
			return nil, err
		}
	}

	excluded := s.canonicalizeChokepoints(req.ExcludedChokepoints)

	resp := &MatrixResponse{
		Mode:                strings.ToLower(string(mode)),
		ExcludedChokepoints: excluded,
		Legs:                make([][]LegResult, len(req.Sources)),
	}

	if mode == dispatch.ModeSea {
		resp.PortSnaps = make([]PortSnapDTO, 0, len(allPoints))
		for _, p := range req.Sources {
			snap, err := s.resolvePortSnap(ctx, p, port.RolePortOfLoading)
			if err != nil {
				return nil, err
			}
			resp.PortSnaps = append(resp.PortSnaps, snap)
		}
		for _, p := range req.Targets {
			snap, err := s.resolvePortSnap(ctx, p, port.RolePortOfDischarge)
			if err != nil {
				return nil, err
			}
			resp.PortSnaps = append(resp.PortSnaps, snap)
		}
	}

	success := true
	for i, src := range req.Sources {
		row := make([]LegResult, len(req.Targets))
		for j, tgt := range req.Targets {
			result, err := s.dispatcher.RouteLeg(ctx, mode, dispatch.Point{Lat: src.Lat, Lon: src.Lon}, dispatch.Point{Lat: tgt.Lat, Lon: tgt.Lon}, excluded)
			if err != nil {
				success = false
				if m := metrics.Get(); m != nil {
					m.RecordMatrixRequest(resp.Mode, false)
				}
				return nil, err
			}
			row[j] = LegResult{DistanceM: result.DistanceM, TimeMS: result.TimeMS, Reachable: result.Reachable}
		}
		resp.Legs[i] = row
	}

	if m := metrics.Get(); m != nil {
		m.RecordMatrixRequest(resp.Mode, success)
	}

	return resp, nil
}

func (s *MatrixService) validatePoint(p Point, validateCoords bool) error {
	if p.Lat > maxUnpolarLatitude || p.Lat < -maxUnpolarLatitude {
		return apperror.New(apperror.CodePolarRegionUnsupported, "coordinate lies beyond the supported polar latitude bound").
			WithDetails("lat", p.Lat).
			WithDetails("lon", p.Lon)
	}

	if validateCoords && s.landMask != nil && s.landMask.Contains(p.Lon, p.Lat) {
		return apperror.New(apperror.CodeCoordinateOnLand, "coordinate lies inside land geometry").
			WithDetails("lat", p.Lat).
			WithDetails("lon", p.Lon)
	}

	return nil
}

// canonicalizeChokepoints drops unknown chokepoint ids and returns the
// deduplicated, order-preserving result for the response echo.
func (s *MatrixService) canonicalizeChokepoints(ids []string) []string {
	if len(ids) == 0 {
		return []string{}
	}

	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		if _, ok := s.registry.Get(id); !ok {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (s *MatrixService) resolvePortSnap(ctx context.Context, p Point, role port.Role) (PortSnapDTO, error) {
	if s.snapCache != nil {
		if cached, ok, err := s.snapCache.Get(ctx, "port", p.Lat, p.Lon); err == nil && ok {
			return PortSnapDTO{
				UNLOCODE:   cached.UNLOCODE,
				Lat:        cached.Lat,
				Lon:        cached.Lon,
				QueryLat:   p.Lat,
				QueryLon:   p.Lon,
				DistanceKM: cached.DistanceKM,
				Method:     "NEAREST_SEAPORT",
				Role:       string(role),
			}, nil
		}
	}

	snap, err := s.dispatcher.ResolvePortSnap(p.Lat, p.Lon, role)
	if m := metrics.Get(); m != nil {
		m.RecordSnap("port", err == nil, snap.DistanceKM)
	}
	if err != nil {
		return PortSnapDTO{}, err
	}

	if s.snapCache != nil {
		cacheErr := s.snapCache.Set(ctx, "port", p.Lat, p.Lon, &cache.CachedSnapResult{
			UNLOCODE:   snap.UNLOCODE,
			Lat:        snap.Lat,
			Lon:        snap.Lon,
			DistanceKM: snap.DistanceKM,
			ComputedAt: time.Now().UnixMilli(),
		}, 0)
		if cacheErr != nil {
			logger.Log.Warn("failed to memoize port snap", "error", cacheErr)
		}
	}

	return PortSnapDTO{
		UNLOCODE:   snap.UNLOCODE,
		Name:       snap.Name,
		Lat:        snap.Lat,
		Lon:        snap.Lon,
		QueryLat:   snap.QueryLat,
		QueryLon:   snap.QueryLon,
		DistanceKM: snap.DistanceKM,
		Method:     snap.Method,
		Role:       string(snap.Role),
	}, nil
}
