package optimize

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/graph"
)

// Step is one craft in a speedrun plan: combine U and V to produce Result.
type Step struct {
	U, V, Result int64
}

// Config bounds the search described in spec.md §4.7.
type Config struct {
	// DeviationBound (M) caps how far a candidate state's working set may
	// drift from the free set (seeds plus whatever is already owned)
	// before it is pruned. Targets count toward it like any other id, so
	// zero admits no state holding an id outside the free set, and a target
	// that is not already free cannot be reached.
	DeviationBound int
}

// searchState is one A* frontier node: the items still owed, the items
// already committed to along this branch, and the ordered trace that
// produced them.
type searchState struct {
	toCraft map[int64]bool
	crafted map[int64]bool
	trace   []Step
}

func (s *searchState) toCraftKey() string {
	return setKey(s.toCraft)
}

func setKey(set map[int64]bool) string {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	key := make([]byte, 0, len(ids)*8)
	for i, id := range ids {
		if i > 0 {
			key = append(key, ',')
		}
		key = fmt.Appendf(key, "%d", id)
	}
	return string(key)
}

type pqItem struct {
	h     int
	state *searchState
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].h < pq[j].h }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(*pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// Result is the outcome of a Run: every minimum-length trace found,
// each already topologically ordered for execution.
type Result struct {
	CraftCount int
	Traces     [][]Step
}

// Run finds the shortest craft sequence(s) that produce every target,
// starting from the given free set (seeds plus anything already owned),
// using g's recipe index and generation numbers for the search heuristic.
// It returns every trace tied for the minimum craft count.
func Run(g *graph.Graph, generations map[int64]int, free []int64, targets []int64, cfg Config) (*Result, error) {
	freeSet := make(map[int64]bool, len(free))
	for _, id := range free {
		freeSet[id] = true
	}

	initialToCraft := make(map[int64]bool)
	for _, id := range targets {
		if !freeSet[id] {
			initialToCraft[id] = true
		}
	}

	start := &searchState{
		toCraft: initialToCraft,
		crafted: map[int64]bool{},
	}

	pq := &priorityQueue{{h: heuristic(0, keysOf(start.toCraft), generations), state: start}}
	heap.Init(pq)

	visited := map[string]int{start.toCraftKey(): 0}
	processed := map[string]bool{}

	bestCount := -1
	var solutions [][]Step

	for pq.Len() > 0 {
		top := heap.Pop(pq).(*pqItem)

		if bestCount != -1 && top.h > bestCount {
			break
		}

		if len(top.state.toCraft) == 0 {
			if bestCount == -1 {
				bestCount = len(top.state.trace)
			}
			if len(top.state.trace) == bestCount {
				solutions = append(solutions, topoSort(top.state.trace))
			}
			continue
		}

		key := top.state.toCraftKey()
		if processed[key] {
			continue
		}
		processed[key] = true

		item := pickHardest(top.state.toCraft, generations)
		for _, pair := range g.RecipesFor(item) {
			u, v := pair[0], pair[1]
			if dependsOn(top.state.trace, u, item) || dependsOn(top.state.trace, v, item) {
				continue
			}

			next := extend(top.state, item, u, v, freeSet)
			deviation := len(unionMinus(next.toCraft, next.crafted, freeSet))
			if deviation > cfg.DeviationBound {
				continue
			}

			nextKey := next.toCraftKey()
			nextCount := len(next.trace)
			if best, ok := visited[nextKey]; ok && best <= nextCount {
				continue
			}
			visited[nextKey] = nextCount

			h := heuristic(nextCount, keysOf(next.toCraft), generations)
			heap.Push(pq, &pqItem{h: h, state: next})
		}
	}

	if bestCount == -1 {
		return nil, fmt.Errorf("optimize: no craft sequence found for the given targets")
	}
	return &Result{CraftCount: bestCount, Traces: solutions}, nil
}

// extend returns the successor state reached by crafting item from u, v.
func extend(s *searchState, item, u, v int64, freeSet map[int64]bool) *searchState {
	toCraft := make(map[int64]bool, len(s.toCraft))
	for id := range s.toCraft {
		if id != item {
			toCraft[id] = true
		}
	}
	crafted := make(map[int64]bool, len(s.crafted)+1)
	for id := range s.crafted {
		crafted[id] = true
	}
	crafted[item] = true

	for _, ing := range [2]int64{u, v} {
		if !freeSet[ing] && !crafted[ing] {
			toCraft[ing] = true
		}
	}

	trace := make([]Step, len(s.trace)+1)
	copy(trace, s.trace)
	trace[len(s.trace)] = Step{U: u, V: v, Result: item}

	return &searchState{toCraft: toCraft, crafted: crafted, trace: trace}
}

// pickHardest returns the pending item with the highest known generation,
// breaking ties by the smallest id for determinism — the pending item
// farthest from the free set is tackled first.
func pickHardest(pending map[int64]bool, generations map[int64]int) int64 {
	var best int64
	bestGen := -1
	first := true
	for id := range pending {
		g := generations[id]
		if first || g > bestGen || (g == bestGen && id < best) {
			best, bestGen, first = id, g, false
		}
	}
	return best
}

// dependsOn reports whether x (if already produced somewhere in trace)
// transitively needs item as an ingredient — used to reject a candidate
// recipe for item that would introduce a cycle through the trace built
// so far.
func dependsOn(trace []Step, x, item int64) bool {
	for _, step := range trace {
		if step.Result == x {
			if step.U == item || step.V == item {
				return true
			}
			return dependsOn(trace, step.U, item) || dependsOn(trace, step.V, item)
		}
	}
	return false
}

func keysOf(set map[int64]bool) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

func unionMinus(a, b map[int64]bool, minus map[int64]bool) []int64 {
	seen := make(map[int64]bool)
	var out []int64
	for id := range a {
		if !minus[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for id := range b {
		if !minus[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
