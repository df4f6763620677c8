package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"sealane/pkg/sealane"
)

// GraphHash computes a deterministic content hash over a sea-lane
// graph's node coordinates and edge weights. It is independent of the
// persisted version_hash, which pkg/sealane derives from node count,
// edge count and build timestamp.
func GraphHash(g *sealane.Graph) string {
	if g == nil {
		return ""
	}

	data := graphToCanonical(g)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

// graphToCanonical produces a deterministic byte representation of a
// graph's nodes and edges, independent of build-time map iteration order.
func graphToCanonical(g *sealane.Graph) []byte {
	nodeIDs := make([]int, 0, len(g.Nodes))
	for id := range g.Nodes {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Ints(nodeIDs)

	type edgeData struct {
		from, to int
		weightM  float64
	}
	edges := make([]edgeData, 0, len(g.Edges))
	for _, e := range g.Edges {
		from, to := e.From, e.To
		if to < from {
			from, to = to, from
		}
		edges = append(edges, edgeData{from, to, e.WeightMeters})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		return edges[i].to < edges[j].to
	})

	var result []byte
	for _, id := range nodeIDs {
		n := g.Nodes[id]
		result = append(result, []byte(fmt.Sprintf("n:%d:%.6f:%.6f;", id, n.Lat, n.Lon))...)
	}
	for _, e := range edges {
		result = append(result, []byte(fmt.Sprintf("e:%d:%d:%.3f;", e.from, e.to, e.weightM))...)
	}

	return result
}

// BuildSnapKey builds a cache key for a memoized snap operation, rounding
// the query coordinates to a fixed precision so near-identical repeat
// queries collide onto the same key.
func BuildSnapKey(kind string, lat, lon float64) string {
	return fmt.Sprintf("snap:%s:%.4f:%.4f", kind, lat, lon)
}

// QuickHash computes a full-length hash of arbitrary data.
func QuickHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortHash computes a 16-character hash of arbitrary data.
func ShortHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}
