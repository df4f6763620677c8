package port

import (
	"testing"

	"sealane/pkg/apperror"
)

func fixturePorts() []Port {
	return []Port{
		{UNLOCODE: "NLRTM", Name: "Rotterdam", Lat: 51.9225, Lon: 4.47917},
		{UNLOCODE: "SGSIN", Name: "Singapore", Lat: 1.2644, Lon: 103.8209},
		{UNLOCODE: "EGSUZ", Name: "Suez", Lat: 29.9669, Lon: 32.5498},
	}
}

func TestSnapper_Snap_NearestMatch(t *testing.T) {
	s := NewSnapper(fixturePorts(), 300.0)

	result, err := s.Snap(51.92, 4.48, RolePortOfLoading)
	if err != nil {
		t.Fatalf("Snap: %v", err)
	}
	if result.UNLOCODE != "NLRTM" {
		t.Errorf("UNLOCODE = %q, want NLRTM", result.UNLOCODE)
	}
	if result.Method != methodNearestSeaport {
		t.Errorf("Method = %q, want %q", result.Method, methodNearestSeaport)
	}
	if result.Role != RolePortOfLoading {
		t.Errorf("Role = %q, want %q", result.Role, RolePortOfLoading)
	}
	if result.DistanceKM < 0 || result.DistanceKM > 1 {
		t.Errorf("DistanceKM = %v, want a small distance near Rotterdam", result.DistanceKM)
	}
}

func TestSnapper_Snap_EveryPortRoundTrips(t *testing.T) {
	ports := fixturePorts()
	s := NewSnapper(ports, 300.0)

	for _, p := range ports {
		result, err := s.Snap(p.Lat, p.Lon, RolePortOfDischarge)
		if err != nil {
			t.Fatalf("Snap(%s): %v", p.UNLOCODE, err)
		}
		if result.UNLOCODE != p.UNLOCODE {
			t.Errorf("Snap(%s) resolved to %s", p.UNLOCODE, result.UNLOCODE)
		}
		if result.DistanceKM >= 1.0 {
			t.Errorf("Snap(%s) distance = %v, want < 1 km", p.UNLOCODE, result.DistanceKM)
		}
	}
}

func TestSnapper_Snap_OutOfRange(t *testing.T) {
	s := NewSnapper([]Port{{UNLOCODE: "NLRTM", Lat: 51.9225, Lon: 4.47917}}, 1.0)

	_, err := s.Snap(45.0, 10.0, RolePortOfLoading)
	if err == nil {
		t.Fatal("expected an out-of-range snap error")
	}
	appErr, ok := err.(*apperror.Error)
	if !ok {
		t.Fatalf("error type = %T, want *apperror.Error", err)
	}
	if appErr.Code != apperror.CodeNoSeaportWithinRange {
		t.Errorf("Code = %q, want %q", appErr.Code, apperror.CodeNoSeaportWithinRange)
	}
	if appErr.Details["nearest_unlocode"] != "NLRTM" {
		t.Errorf("Details[nearest_unlocode] = %v, want NLRTM", appErr.Details["nearest_unlocode"])
	}
}

func TestSnapper_Snap_EmptyRegistry(t *testing.T) {
	s := NewSnapper(nil, 300.0)

	_, err := s.Snap(0, 0, RolePortOfLoading)
	if err == nil {
		t.Fatal("expected an error for an empty port registry")
	}
	appErr, ok := err.(*apperror.Error)
	if !ok {
		t.Fatalf("error type = %T, want *apperror.Error", err)
	}
	if appErr.Code != apperror.CodeNoSeaportFound {
		t.Errorf("Code = %q, want %q", appErr.Code, apperror.CodeNoSeaportFound)
	}
}

func TestSnapper_Snap_TieBrokenByScanOrder(t *testing.T) {
	ports := []Port{
		{UNLOCODE: "AAAAA", Lat: 0, Lon: 0},
		{UNLOCODE: "BBBBB", Lat: 0, Lon: 0},
	}
	s := NewSnapper(ports, 300.0)

	result, err := s.Snap(0, 0, RolePortOfLoading)
	if err != nil {
		t.Fatalf("Snap: %v", err)
	}
	if result.UNLOCODE != "AAAAA" {
		t.Errorf("UNLOCODE = %q, want AAAAA (first occurrence)", result.UNLOCODE)
	}
}
