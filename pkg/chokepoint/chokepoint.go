// Package chokepoint loads, persists, and queries the maritime chokepoint
// metadata registry used to exclude sea-lane graph nodes from a route at
// query time.
package chokepoint

import (
	"encoding/json"
	"os"
	"sync"

	"sealane/pkg/apperror"
)

// Chokepoint describes one named maritime strait or canal and the set of
// sea-lane graph node indices tagged as belonging to it.
type Chokepoint struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Region        string `json:"region,omitempty"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	RadiusDegrees float64 `json:"radiusDegrees,omitempty"`
	StepDegrees   float64 `json:"stepDegrees,omitempty"`
	NodeIDs       []int   `json:"nodeIds,omitempty"`
}

// Registry is a mapping from chokepoint id to Chokepoint, safe for
// concurrent read access once built by the offline graph builder.
type Registry struct {
	mu          sync.RWMutex
	chokepoints map[string]Chokepoint
}

// schema mirrors the on-disk JSON document for load/save round-tripping.
type schema struct {
	Chokepoints []Chokepoint `json:"chokepoints"`
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{chokepoints: make(map[string]Chokepoint)}
}

// LoadFrom parses a chokepoint metadata file into a Registry.
func LoadFrom(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeIOFailed, "failed to read chokepoint registry file").
			WithDetails("path", path)
	}

	var doc schema
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeIOFailed, "failed to parse chokepoint registry JSON").
			WithDetails("path", path)
	}

	reg := New()
	for _, cp := range doc.Chokepoints {
		reg.Add(cp)
	}
	return reg, nil
}

// SaveTo writes the registry back to path using the same JSON schema.
func (r *Registry) SaveTo(path string) error {
	r.mu.RLock()
	doc := schema{Chokepoints: make([]Chokepoint, 0, len(r.chokepoints))}
	for _, cp := range r.chokepoints {
		doc.Chokepoints = append(doc.Chokepoints, cp)
	}
	r.mu.RUnlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return apperror.Wrap(err, apperror.CodeIOFailed, "failed to marshal chokepoint registry")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperror.Wrap(err, apperror.CodeIOFailed, "failed to write chokepoint registry file").
			WithDetails("path", path)
	}
	return nil
}

// Add inserts or replaces the chokepoint keyed by its id.
func (r *Registry) Add(cp Chokepoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chokepoints[cp.ID] = cp
}

// Get returns the chokepoint for id, and whether it exists.
func (r *Registry) Get(id string) (Chokepoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp, ok := r.chokepoints[id]
	return cp, ok
}

// Size returns the number of registered chokepoints.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chokepoints)
}

// ExcludedNodeIDs returns the union of node_ids over the known
// chokepoints named in ids. Unknown ids are silently ignored; a nil or
// empty ids yields the empty set.
func (r *Registry) ExcludedNodeIDs(ids []string) map[int]bool {
	excluded := make(map[int]bool)
	if len(ids) == 0 {
		return excluded
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range ids {
		cp, ok := r.chokepoints[id]
		if !ok {
			continue
		}
		for _, nodeID := range cp.NodeIDs {
			excluded[nodeID] = true
		}
	}
	return excluded
}
