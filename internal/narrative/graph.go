package narrative

import "storycast/internal/domain"

// Adjacency maps a node id to the target ids of its choices, in choice order.
type Adjacency map[string][]string

// AdjacencyOf builds the adjacency view of a graph.
func AdjacencyOf(g *domain.NarrativeGraph) Adjacency {
	adj := make(Adjacency, len(g.Nodes))
	for _, node := range g.Nodes {
		targets := make([]string, 0, len(node.Choices))
		for _, choice := range node.Choices {
			targets = append(targets, choice.TargetNodeID)
		}
		adj[node.ID] = append(adj[node.ID], targets...)
	}
	return adj
}

// Reachable returns the set of node ids reachable from start by breadth-first
// traversal, start included. Targets absent from adj are visited but not expanded.
func Reachable(adj Adjacency, start string) map[string]bool {
	visited := map[string]bool{start: true}
	queue := []string{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adj[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}

// FindCycles returns, in order, the node ids at which a back edge closes a
// cycle. roots fixes the traversal order so results are deterministic.
func FindCycles(adj Adjacency, roots []string) []string {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[string]int, len(adj))
	var cycles []string
	seen := make(map[string]bool)

	var visit func(id string)
	visit = func(id string) {
		state[id] = inProgress
		for _, next := range adj[id] {
			switch state[next] {
			case inProgress:
				if !seen[next] {
					seen[next] = true
					cycles = append(cycles, next)
				}
			case unvisited:
				visit(next)
			}
		}
		state[id] = done
	}

	for _, id := range roots {
		if state[id] == unvisited {
			visit(id)
		}
	}
	return cycles
}
