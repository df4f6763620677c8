package sealane

import (
	"container/heap"
	"context"
)

// pathQueueItem is an entry in the shortest-path priority queue.
type pathQueueItem struct {
	node     int
	distance float64
	index    int
}

// pathQueue is a min-heap on distance, tie-broken by node id for
// deterministic exploration order.
type pathQueue []*pathQueueItem

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	if pq[i].distance != pq[j].distance {
		return pq[i].distance < pq[j].distance
	}
	return pq[i].node < pq[j].node
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x any) {
	item := x.(*pathQueueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// ShortestPath computes the shortest weighted path between from and to
// over g's undirected, non-negative edge weights, skipping any node
// rejected by accept (nil accepts every node). It returns the total
// distance in meters and whether to was reached. Both endpoints must
// themselves be accepted, or the search returns unreachable immediately.
func ShortestPath(ctx context.Context, g *Graph, accept func(nodeID int) bool, from, to int) (distanceMeters float64, reachable bool) {
	if accept != nil && (!accept(from) || !accept(to)) {
		return 0, false
	}
	if from == to {
		if _, ok := g.GetNode(from); ok {
			return 0, true
		}
		return 0, false
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.Nodes[from]; !ok {
		return 0, false
	}
	if _, ok := g.Nodes[to]; !ok {
		return 0, false
	}

	dist := make(map[int]float64, len(g.Nodes))
	visited := make(map[int]bool, len(g.Nodes))

	dist[from] = 0
	pq := make(pathQueue, 0, 1)
	heap.Init(&pq)
	heap.Push(&pq, &pathQueueItem{node: from, distance: 0})

	const checkInterval = 256
	iterations := 0

	for pq.Len() > 0 {
		if iterations%checkInterval == 0 {
			select {
			case <-ctx.Done():
				return 0, false
			default:
			}
		}
		iterations++

		current := heap.Pop(&pq).(*pathQueueItem)
		u := current.node
		if visited[u] {
			continue
		}
		visited[u] = true

		if u == to {
			return current.distance, true
		}

		for _, v := range g.adjacency[u] {
			if visited[v] {
				continue
			}
			if accept != nil && !accept(v) {
				continue
			}
			edge, ok := g.Edges[canonicalKey(u, v)]
			if !ok {
				continue
			}
			newDist := current.distance + edge.WeightMeters
			if existing, seen := dist[v]; !seen || newDist < existing {
				dist[v] = newDist
				heap.Push(&pq, &pathQueueItem{node: v, distance: newDist})
			}
		}
	}

	return 0, false
}
