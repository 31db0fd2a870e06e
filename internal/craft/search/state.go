// Package search implements the iterative-deepening discovery engine:
// an immutable craft-state representation with a cactus-stack parent
// pointer (each child allocates one new frame instead of copying the
// whole item list) plus the depth-limited search that walks it.
package search

import "github.com/gocraft/infinite-craft-oracle/internal/craft/ids"

// State is one node of a craft sequence: the seed elements plus zero or
// more crafted elements, each added by combining two earlier elements
// (by index). It never copies the item list — each child links back to
// its parent and stores only the one new item and the pair that produced
// it, so a whole search branch is a chain of small frames sharing
// structure with its ancestors.
type State struct {
	parent  *State
	seeds   []int64 // set only on the root
	itemID  int64   // item this node introduces (meaningless on the root)
	pairKey int64   // pair-key that produced this node; -1 on the root
	u, v    int     // indices combined to produce this node
	count   int     // total items through this node (len(seeds) on the root)
}

// NewRoot builds the starting state for a given seed element id set.
func NewRoot(seeds []int64) *State {
	return &State{seeds: seeds, pairKey: -1, count: len(seeds)}
}

func (s *State) seedCount() int {
	n := s
	for n.parent != nil {
		n = n.parent
	}
	return len(n.seeds)
}

// ItemCount returns how many items (seeds + crafted) exist through this
// state.
func (s *State) ItemCount() int { return s.count }

// PairKey returns the pair-key that produced this state, or -1 at the
// root.
func (s *State) PairKey() int64 { return s.pairKey }

// TailItem returns the id of the most recently added item — the last
// craft on this path, or the last seed if no craft has happened yet.
func (s *State) TailItem() int64 {
	if s.parent == nil {
		return s.seeds[len(s.seeds)-1]
	}
	return s.itemID
}

// ItemAt returns the item id at the given array index, walking the parent
// chain (or the root's seed slice) to find it.
func (s *State) ItemAt(index int) int64 {
	n := s
	for n.parent != nil {
		if n.count-1 == index {
			return n.itemID
		}
		n = n.parent
	}
	return n.seeds[index]
}

// indexOf returns the first index whose item equals id, or -1.
func (s *State) indexOf(id int64) int {
	for i := 0; i < s.count; i++ {
		if s.ItemAt(i) == id {
			return i
		}
	}
	return -1
}

// Used returns how many times the item at index has been consumed as an
// ingredient somewhere along this path.
func (s *State) Used(index int) int {
	count := 0
	for n := s; n.parent != nil; n = n.parent {
		if n.u == index || n.v == index {
			count++
		}
	}
	return count
}

// UnusedItems returns the indexes of crafted (non-seed) items that have
// never been consumed as an ingredient along this path. A non-empty result
// means the sequence isn't minimal yet: every crafted item must eventually
// be used by something.
func (s *State) UnusedItems() []int {
	n0 := s.seedCount()
	var out []int
	for i := n0; i < s.count; i++ {
		if s.Used(i) == 0 {
			out = append(out, i)
		}
	}
	return out
}

// Keys returns the ordered pair-key sequence from the first crafted item
// to this state (seeds contribute no keys), used both for the state
// ordering invariant and for resume comparisons.
func (s *State) Keys() []int64 {
	var keys []int64
	for n := s; n.parent != nil; n = n.parent {
		keys = append(keys, n.pairKey)
	}
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return keys
}

// Trace renders the crafts along this path (seeds excluded) as
// "A + B = C" lines, in root-to-leaf order, using registry to resolve
// names.
func (s *State) Trace(registry *ids.Registry) string {
	type step struct{ u, v, result int64 }
	var steps []step
	for n := s; n.parent != nil; n = n.parent {
		steps = append(steps, step{n.ItemAt(n.u), n.ItemAt(n.v), n.itemID})
	}

	out := ""
	for i := len(steps) - 1; i >= 0; i-- {
		st := steps[i]
		out += registry.GetName(st.u) + " + " + registry.GetName(st.v) + " = " + registry.GetName(st.result) + "\n"
	}
	return out
}

// Child attempts to extend this state with the item produced by pairKey,
// enforcing the canonical-ordering invariant (pairKey must exceed the
// parent's own pair-key), the item-count limit, and the content rules
// described in allowStarting's two modes:
//
//   - allowStarting == false: reject if result is already present anywhere
//     in the item list (it would create a cycle).
//   - allowStarting == true: reject only if result equals one of the two
//     ingredients just combined, or if result is already present and that
//     earlier occurrence has already been consumed (used > 0) elsewhere.
func (s *State) Child(pairKey int64, result int64, allowStarting bool) (*State, bool) {
	if pairKey <= s.pairKey {
		return nil, false
	}
	if pairKey >= ids.Limit(int64(s.count)) {
		return nil, false
	}
	if result == ids.Nothing || result == ids.UncertainNothing {
		return nil, false
	}

	u, v, err := ids.Decode(pairKey)
	if err != nil {
		return nil, false
	}
	ui, vi := int(u), int(v)

	if !allowStarting {
		if s.indexOf(result) >= 0 {
			return nil, false
		}
	} else {
		if result == s.ItemAt(ui) || result == s.ItemAt(vi) {
			return nil, false
		}
		if idx := s.indexOf(result); idx >= 0 && s.Used(idx) != 0 {
			return nil, false
		}
	}

	return &State{
		parent:  s,
		itemID:  result,
		pairKey: pairKey,
		u:       ui,
		v:       vi,
		count:   s.count + 1,
	}, true
}

// lessKeys reports whether a sorts before b under the same lexicographic
// order spec.md's resume cursor uses: shared prefix compared elementwise,
// shorter-is-less on a tie.
func lessKeys(a, b []int64) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
