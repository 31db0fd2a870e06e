package optimize

import "sort"

// topoSort reorders trace (built target-first, ingredients-later during
// the backward A* expansion) into an executable order: every step's
// ingredients are either free or produced by an earlier step in the
// returned order. Ties among ready steps break by original trace index,
// for deterministic output.
func topoSort(trace []Step) []Step {
	producedBy := make(map[int64]int, len(trace))
	for i, s := range trace {
		producedBy[s.Result] = i
	}

	indegree := make([]int, len(trace))
	dependents := make([][]int, len(trace))
	for i, s := range trace {
		for _, ing := range [2]int64{s.U, s.V} {
			if j, ok := producedBy[ing]; ok && j != i {
				indegree[i]++
				dependents[j] = append(dependents[j], i)
			}
		}
	}

	ready := make([]int, 0, len(trace))
	for i, d := range indegree {
		if d == 0 {
			ready = append(ready, i)
		}
	}

	visited := make([]bool, len(trace))
	order := make([]Step, 0, len(trace))
	for len(ready) > 0 {
		sort.Ints(ready)
		i := ready[0]
		ready = ready[1:]
		if visited[i] {
			continue
		}
		visited[i] = true
		order = append(order, trace[i])

		for _, dep := range dependents[i] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	return order
}
