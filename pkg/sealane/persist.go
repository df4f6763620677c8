package sealane

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sealane/pkg/apperror"
	"sealane/pkg/chokepoint"
)

const (
	graphFileName     = "graph.json"
	locationIndexFile = "location_index.json"
	summaryFileName   = "build_summary.json"
	chokepointFile    = "chokepoint_metadata.json"
)

// persistedNode and persistedEdge mirror Node/Edge for the on-disk
// graph format.
type persistedNode struct {
	ID           int     `json:"id"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	ChokepointID string  `json:"chokepoint_id,omitempty"`
}

type persistedEdge struct {
	From         int     `json:"from"`
	To           int     `json:"to"`
	WeightMeters float64 `json:"weight_meters"`
}

type persistedGraph struct {
	VersionHash string          `json:"version_hash"`
	Nodes       []persistedNode `json:"nodes"`
	Edges       []persistedEdge `json:"edges"`
}

// locationIndexDoc is a flat, reloadable form of the SpatialIndex
// bucket map.
type locationIndexDoc struct {
	CellDegrees float64      `json:"cell_degrees"`
	Buckets     []indexEntry `json:"buckets"`
}

type indexEntry struct {
	Lat     int   `json:"cell_lat"`
	Lon     int   `json:"cell_lon"`
	NodeIDs []int `json:"node_ids"`
}

// persist writes the graph, its spatial index, the chokepoint metadata
// sidecar, and the build summary to outputDir.
func persist(outputDir string, g *Graph, registry *chokepoint.Registry, summary *BuildSummary) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return apperror.Wrap(err, apperror.CodeIOFailed, "failed to create output directory").
			WithDetails("output_dir", outputDir)
	}

	versionHash := computeVersionHash(g.NodeCount(), g.EdgeCount(), summary.BuildTimestamp)
	summary.SeaGraphVersion = versionHash

	if err := writeGraph(outputDir, g, versionHash); err != nil {
		return err
	}
	if err := writeLocationIndex(outputDir, g); err != nil {
		return err
	}
	if err := registry.SaveTo(filepath.Join(outputDir, chokepointFile)); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outputDir, summaryFileName), summary); err != nil {
		return err
	}

	return nil
}

func writeGraph(outputDir string, g *Graph, versionHash string) error {
	g.mu.RLock()
	doc := persistedGraph{
		VersionHash: versionHash,
		Nodes:       make([]persistedNode, 0, len(g.Nodes)),
		Edges:       make([]persistedEdge, 0, len(g.Edges)),
	}
	for id, n := range g.Nodes {
		doc.Nodes = append(doc.Nodes, persistedNode{ID: id, Lat: n.Lat, Lon: n.Lon, ChokepointID: n.ChokepointID})
	}
	for _, e := range g.Edges {
		doc.Edges = append(doc.Edges, persistedEdge{From: e.From, To: e.To, WeightMeters: e.WeightMeters})
	}
	g.mu.RUnlock()

	return writeJSON(filepath.Join(outputDir, graphFileName), doc)
}

func writeLocationIndex(outputDir string, g *Graph) error {
	idx := NewSpatialIndex(g)

	idx.mu.RLock()
	doc := locationIndexDoc{
		CellDegrees: cellDegrees,
		Buckets:     make([]indexEntry, 0, len(idx.buckets)),
	}
	for key, ids := range idx.buckets {
		doc.Buckets = append(doc.Buckets, indexEntry{Lat: key.lat, Lon: key.lon, NodeIDs: ids})
	}
	idx.mu.RUnlock()

	return writeJSON(filepath.Join(outputDir, locationIndexFile), doc)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperror.Wrap(err, apperror.CodeIOFailed, "failed to marshal persisted document").
			WithDetails("path", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperror.Wrap(err, apperror.CodeIOFailed, "failed to write persisted document").
			WithDetails("path", path)
	}
	return nil
}

// computeVersionHash derives a stable short version hash from node
// count, edge count, and the build timestamp, per spec.
func computeVersionHash(nodeCount, edgeCount int, buildTimestamp string) string {
	payload := fmt.Sprintf("%d:%d:%s", nodeCount, edgeCount, buildTimestamp)
	sum := sha256.Sum256([]byte(payload))
	return fmt.Sprintf("%x", sum)[:16]
}

// LoadGraph reads a persisted graph back from outputDir.
func LoadGraph(outputDir string) (*Graph, string, error) {
	data, err := os.ReadFile(filepath.Join(outputDir, graphFileName))
	if err != nil {
		return nil, "", apperror.Wrap(err, apperror.CodeIOFailed, "failed to read persisted graph").
			WithDetails("output_dir", outputDir)
	}

	var doc persistedGraph
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, "", apperror.Wrap(err, apperror.CodeIOFailed, "failed to parse persisted graph").
			WithDetails("output_dir", outputDir)
	}

	g := NewGraph()
	for _, n := range doc.Nodes {
		g.AddNode(n.ID, n.Lat, n.Lon)
		if n.ChokepointID != "" {
			g.SetChokepoint(n.ID, n.ChokepointID)
		}
	}
	for _, e := range doc.Edges {
		g.AddEdge(e.From, e.To, e.WeightMeters)
	}

	return g, doc.VersionHash, nil
}

// LoadBuildSummary reads a persisted build_summary.json back from
// outputDir.
func LoadBuildSummary(outputDir string) (*BuildSummary, error) {
	data, err := os.ReadFile(filepath.Join(outputDir, summaryFileName))
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeIOFailed, "failed to read build summary").
			WithDetails("output_dir", outputDir)
	}
	var summary BuildSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeIOFailed, "failed to parse build summary").
			WithDetails("output_dir", outputDir)
	}
	return &summary, nil
}
