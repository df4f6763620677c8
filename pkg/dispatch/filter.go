// Package dispatch implements the query-time chokepoint-aware edge filter
// and the per-request routing dispatch that selects between the sea
// graph and an external road-routing engine.
package dispatch

import "sealane/pkg/chokepoint"

// EdgeFilter rejects any edge with an endpoint in its excluded node set.
// It holds no routing state and is cheap to construct per request.
type EdgeFilter struct {
	excluded map[int]bool
}

// NewEdgeFilter builds a filter directly from a set of excluded node ids.
func NewEdgeFilter(excludedNodeIDs []int) *EdgeFilter {
	excluded := make(map[int]bool, len(excludedNodeIDs))
	for _, id := range excludedNodeIDs {
		excluded[id] = true
	}
	return &EdgeFilter{excluded: excluded}
}

// NewEdgeFilterFromChokepoints builds a filter from a list of excluded
// chokepoint ids, resolved against registry into their node sets. Unknown
// ids are silently dropped, matching the dispatch response's
// "canonicalized, unknown ids dropped" echo policy.
func NewEdgeFilterFromChokepoints(excludedChokepointIDs []string, registry *chokepoint.Registry) *EdgeFilter {
	return &EdgeFilter{excluded: registry.ExcludedNodeIDs(excludedChokepointIDs)}
}

// AcceptNode reports whether a single node passes the filter.
func (f *EdgeFilter) AcceptNode(nodeID int) bool {
	if f == nil || len(f.excluded) == 0 {
		return true
	}
	return !f.excluded[nodeID]
}

// AcceptEdge reports whether an edge between from and to passes the
// filter: it is accepted iff neither endpoint is excluded.
func (f *EdgeFilter) AcceptEdge(from, to int) bool {
	return f.AcceptNode(from) && f.AcceptNode(to)
}
