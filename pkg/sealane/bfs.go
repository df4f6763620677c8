package sealane

// BFSReachable returns the set of node IDs reachable from source, following
// undirected edges.
func BFSReachable(g *Graph, source int) map[int]bool {
	visited := make(map[int]bool)
	queue := []int{source}
	visited[source] = true

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		for _, v := range g.Neighbors(u) {
			if visited[v] {
				continue
			}
			visited[v] = true
			queue = append(queue, v)
		}
	}

	return visited
}

// FindConnectedComponents partitions the graph's nodes into connected
// components, each listed as a slice of node IDs. Nodes with no edges are
// returned as singleton components.
func FindConnectedComponents(g *Graph) [][]int {
	visited := make(map[int]bool)
	components := make([][]int, 0, len(g.Nodes)/10+1)

	for nodeID := range g.Nodes {
		if visited[nodeID] {
			continue
		}

		var component []int
		queue := []int{nodeID}
		visited[nodeID] = true

		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			component = append(component, u)

			for _, v := range g.Neighbors(u) {
				if !visited[v] {
					visited[v] = true
					queue = append(queue, v)
				}
			}
		}

		components = append(components, component)
	}

	return components
}

// LargestComponent returns the largest connected component's size and the
// total component count.
func LargestComponent(g *Graph) (largest int, total int) {
	components := FindConnectedComponents(g)
	total = len(components)
	for _, c := range components {
		if len(c) > largest {
			largest = len(c)
		}
	}
	return largest, total
}
