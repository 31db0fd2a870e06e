// Package optimize implements the A* speedrun optimizer: given a set of
// target elements, a recipe graph, and a deviation bound, it finds a
// minimum-length ordered craft sequence that produces every target.
package optimize

import "sort"

// adjustedGeneration computes spec.md §4.7's admissible heuristic
// component for a pending set: sort the raw generations ascending, then
// enforce strict monotonicity (g[k] = max(g[k], g[k-1]+1)), since two
// items of the same raw generation still need at least one craft between
// them. The result is the maximum adjusted value, or 0 for an empty set.
func adjustedGeneration(pending []int64, generations map[int64]int) int {
	if len(pending) == 0 {
		return 0
	}

	gens := make([]int, len(pending))
	for i, id := range pending {
		gens[i] = generations[id]
	}
	sort.Ints(gens)

	for k := 1; k < len(gens); k++ {
		if gens[k-1]+1 > gens[k] {
			gens[k] = gens[k-1] + 1
		}
	}
	return gens[len(gens)-1]
}

// heuristic is h(state) = |trace| + adjustedGeneration(to_craft).
func heuristic(craftCount int, pending []int64, generations map[int64]int) int {
	return craftCount + adjustedGeneration(pending, generations)
}
