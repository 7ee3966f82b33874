package graph

import "container/heap"

// Edge is a weighted transition to another node.
type Edge[N comparable] struct {
	To     N
	Weight int
}

// Expand returns the outgoing edges of a node. A node with no edges is
// terminal.
type Expand[N comparable] func(node N) ([]Edge[N], error)

// ShortestPath runs Dijkstra from origin and returns the distance to the
// nearest terminal node together with the node sequence leading to it.
// Returns -1 and a nil path if no terminal node is reachable.
func ShortestPath[N comparable](origin N, expand Expand[N]) (int, []N, error) {
	dist := map[N]int{origin: 0}
	prev := make(map[N]N)

	pq := &priorityQueue[N]{{node: origin, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem[N])
		if d, ok := dist[item.node]; ok && item.dist > d {
			continue
		}
		edges, err := expand(item.node)
		if err != nil {
			return -1, nil, err
		}
		if len(edges) == 0 {
			return item.dist, buildPath(prev, origin, item.node), nil
		}
		for _, e := range edges {
			nd := item.dist + e.Weight
			if d, ok := dist[e.To]; !ok || nd < d {
				dist[e.To] = nd
				prev[e.To] = item.node
				heap.Push(pq, pqItem[N]{node: e.To, dist: nd})
			}
		}
	}
	return -1, nil, nil
}

func buildPath[N comparable](prev map[N]N, origin, end N) []N {
	path := []N{end}
	for n := end; n != origin; {
		n = prev[n]
		path = append(path, n)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Priority queue for Dijkstra
type pqItem[N comparable] struct {
	node N
	dist int
}

type priorityQueue[N comparable] []pqItem[N]

func (pq priorityQueue[N]) Len() int            { return len(pq) }
func (pq priorityQueue[N]) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue[N]) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue[N]) Push(x interface{}) { *pq = append(*pq, x.(pqItem[N])) }
func (pq *priorityQueue[N]) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
