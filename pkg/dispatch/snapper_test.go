package dispatch

import (
	"testing"

	"sealane/pkg/apperror"
	"sealane/pkg/sealane"
)

func buildSnapperFixture() *sealane.SpatialIndex {
	g := sealane.NewGraph()
	g.AddNode(0, 51.9225, 4.47917)
	g.AddNode(1, 52.0, 4.5)
	return sealane.NewSpatialIndex(g)
}

func TestSeaNodeSnapper_Snap_NearestAccepted(t *testing.T) {
	idx := buildSnapperFixture()
	s := NewSeaNodeSnapper(idx, 300000.0)

	id, distM, err := s.Snap(51.92, 4.48, NewEdgeFilter(nil))
	if err != nil {
		t.Fatalf("Snap: %v", err)
	}
	if id != 0 {
		t.Errorf("nodeID = %d, want 0", id)
	}
	if distM < 0 {
		t.Errorf("distM = %v, want non-negative", distM)
	}
}

func TestSeaNodeSnapper_Snap_RespectsFilter(t *testing.T) {
	idx := buildSnapperFixture()
	s := NewSeaNodeSnapper(idx, 300000.0)

	id, _, err := s.Snap(51.92, 4.48, NewEdgeFilter([]int{0}))
	if err != nil {
		t.Fatalf("Snap: %v", err)
	}
	if id != 1 {
		t.Errorf("nodeID = %d, want 1 (node 0 excluded)", id)
	}
}

func TestSeaNodeSnapper_Snap_BeyondThresholdFails(t *testing.T) {
	idx := buildSnapperFixture()
	s := NewSeaNodeSnapper(idx, 1.0) // 1 meter

	_, _, err := s.Snap(51.92, 4.48, NewEdgeFilter(nil))
	if err == nil {
		t.Fatal("expected a snap-distance failure")
	}
	appErr, ok := err.(*apperror.Error)
	if !ok {
		t.Fatalf("error type = %T, want *apperror.Error", err)
	}
	if appErr.Code != apperror.CodeGraphSnapFailed {
		t.Errorf("Code = %q, want %q", appErr.Code, apperror.CodeGraphSnapFailed)
	}
}

func TestSeaNodeSnapper_Snap_AllFilteredFails(t *testing.T) {
	idx := buildSnapperFixture()
	s := NewSeaNodeSnapper(idx, 300000.0)

	_, _, err := s.Snap(51.92, 4.48, NewEdgeFilter([]int{0, 1}))
	if err == nil {
		t.Fatal("expected a snap failure when every node is excluded")
	}
}
