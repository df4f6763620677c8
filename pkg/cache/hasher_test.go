package cache

import (
	"testing"

	"sealane/pkg/sealane"
)

func testGraph(edgeWeight float64) *sealane.Graph {
	g := sealane.NewGraph()
	g.AddNode(0, 51.9, 4.1)
	g.AddNode(1, 1.3, 103.8)
	g.AddNode(2, 29.9, 32.5)
	g.AddEdge(0, 1, edgeWeight)
	return g
}

func TestGraphHash(t *testing.T) {
	t.Run("nil graph", func(t *testing.T) {
		hash := GraphHash(nil)
		if hash != "" {
			t.Errorf("GraphHash(nil) = %v, want empty string", hash)
		}
	})

	t.Run("same graph produces same hash", func(t *testing.T) {
		g := testGraph(1000)

		hash1 := GraphHash(g)
		hash2 := GraphHash(g)

		if hash1 != hash2 {
			t.Errorf("same graph should produce same hash: %v != %v", hash1, hash2)
		}
	})

	t.Run("different graphs produce different hashes", func(t *testing.T) {
		g1 := testGraph(1000)
		g2 := testGraph(2000)

		hash1 := GraphHash(g1)
		hash2 := GraphHash(g2)

		if hash1 == hash2 {
			t.Error("different graphs should produce different hashes")
		}
	})

	t.Run("edge direction does not affect hash", func(t *testing.T) {
		g1 := sealane.NewGraph()
		g1.AddNode(0, 51.9, 4.1)
		g1.AddNode(1, 1.3, 103.8)
		g1.AddEdge(0, 1, 1000)

		g2 := sealane.NewGraph()
		g2.AddNode(0, 51.9, 4.1)
		g2.AddNode(1, 1.3, 103.8)
		g2.AddEdge(1, 0, 1000)

		hash1 := GraphHash(g1)
		hash2 := GraphHash(g2)

		if hash1 != hash2 {
			t.Error("edge direction should not affect hash of an undirected graph")
		}
	})
}

func TestBuildSnapKey(t *testing.T) {
	key := BuildSnapKey("port", 51.9225, 4.47917)
	expected := "snap:port:51.9225:4.4792"
	if key != expected {
		t.Errorf("BuildSnapKey() = %v, want %v", key, expected)
	}
}

func TestQuickHash(t *testing.T) {
	data := []byte("test data")
	hash := QuickHash(data)

	if len(hash) != 64 { // SHA256 hex = 64 chars
		t.Errorf("QuickHash length = %d, want 64", len(hash))
	}

	// Same data should produce same hash
	hash2 := QuickHash(data)
	if hash != hash2 {
		t.Error("same data should produce same hash")
	}
}

func TestShortHash(t *testing.T) {
	data := []byte("test data")
	hash := ShortHash(data)

	if len(hash) != 16 {
		t.Errorf("ShortHash length = %d, want 16", len(hash))
	}
}
