package dispatch

import (
	"testing"

	"sealane/pkg/chokepoint"
)

func TestEdgeFilter_EmptyAcceptsEverything(t *testing.T) {
	f := NewEdgeFilter(nil)
	if !f.AcceptNode(7) {
		t.Error("expected an empty filter to accept any node")
	}
	if !f.AcceptEdge(1, 2) {
		t.Error("expected an empty filter to accept any edge")
	}
}

func TestEdgeFilter_RejectsExcludedEndpoint(t *testing.T) {
	f := NewEdgeFilter([]int{5})
	if f.AcceptNode(5) {
		t.Error("expected node 5 to be rejected")
	}
	if f.AcceptEdge(1, 5) {
		t.Error("expected an edge touching node 5 to be rejected")
	}
	if !f.AcceptEdge(1, 2) {
		t.Error("expected an edge not touching node 5 to be accepted")
	}
}

func TestEdgeFilter_NilReceiverAcceptsEverything(t *testing.T) {
	var f *EdgeFilter
	if !f.AcceptNode(3) {
		t.Error("expected a nil filter to accept any node")
	}
}

func TestNewEdgeFilterFromChokepoints_ResolvesAndDropsUnknown(t *testing.T) {
	registry := chokepoint.New()
	registry.Add(chokepoint.Chokepoint{ID: "SUEZ", NodeIDs: []int{10, 11}})

	f := NewEdgeFilterFromChokepoints([]string{"SUEZ", "NOT_A_REAL_ID"}, registry)

	if f.AcceptNode(10) || f.AcceptNode(11) {
		t.Error("expected SUEZ's node ids to be excluded")
	}
	if !f.AcceptNode(12) {
		t.Error("expected a node outside SUEZ to be accepted")
	}
}
