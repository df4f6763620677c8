package port

import (
	"sealane/pkg/apperror"
	"sealane/pkg/geo"
)

// Role identifies which side of a port pair a coordinate was supplied
// for. It affects only error and result message composition; the snap
// policy itself is identical for both roles.
type Role string

const (
	RolePortOfLoading   Role = "PORT_OF_LOADING"
	RolePortOfDischarge Role = "PORT_OF_DISCHARGE"
)

// SnapResult carries a coordinate's resolution to the nearest seaport.
type SnapResult struct {
	UNLOCODE   string
	Name       string
	Lat        float64
	Lon        float64
	QueryLat   float64
	QueryLon   float64
	DistanceKM float64
	Method     string
	Role       Role
}

const methodNearestSeaport = "NEAREST_SEAPORT"

// Snapper resolves arbitrary coordinates to the nearest port in a fixed
// registry.
type Snapper struct {
	ports             []Port
	maxSnapDistanceKM float64
}

// NewSnapper builds a Snapper over ports, rejecting any candidate whose
// nearest distance exceeds maxSnapDistanceKM.
func NewSnapper(ports []Port, maxSnapDistanceKM float64) *Snapper {
	return &Snapper{ports: ports, maxSnapDistanceKM: maxSnapDistanceKM}
}

// Snap returns the nearest port to (lat, lon), failing with
// NO_SEAPORT_FOUND on an empty registry or NO_SEAPORT_WITHIN_RANGE when
// the nearest candidate is further than the configured threshold.
func (s *Snapper) Snap(lat, lon float64, role Role) (SnapResult, error) {
	if len(s.ports) == 0 {
		return SnapResult{}, apperror.New(apperror.CodeNoSeaportFound, "no seaport available to snap to").
			WithField("role").
			WithDetails("lat", lat).
			WithDetails("lon", lon).
			WithDetails("role", string(role))
	}

	best := s.ports[0]
	bestDist := geo.HaversineKM(lat, lon, best.Lat, best.Lon)

	for _, p := range s.ports[1:] {
		d := geo.HaversineKM(lat, lon, p.Lat, p.Lon)
		if d < bestDist {
			bestDist = d
			best = p
		}
	}

	if bestDist > s.maxSnapDistanceKM {
		return SnapResult{}, apperror.New(apperror.CodeNoSeaportWithinRange, "no seaport within snap range").
			WithField("role").
			WithDetails("lat", lat).
			WithDetails("lon", lon).
			WithDetails("nearest_unlocode", best.UNLOCODE).
			WithDetails("distance_km", bestDist).
			WithDetails("role", string(role))
	}

	return SnapResult{
		UNLOCODE:   best.UNLOCODE,
		Name:       best.Name,
		Lat:        best.Lat,
		Lon:        best.Lon,
		QueryLat:   lat,
		QueryLon:   lon,
		DistanceKM: bestDist,
		Method:     methodNearestSeaport,
		Role:       role,
	}, nil
}
