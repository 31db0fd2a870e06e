package speedrun

import (
	"context"
	"fmt"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/handler"
)

// SimpleCheckResult is the outcome of a structural pass over a script: no
// oracle calls, just bookkeeping over the craft list itself.
type SimpleCheckResult struct {
	HasDuplicates bool
	HasMisplaced  bool
	HasMissing    bool
	Issues        []string
}

// SimpleCheck mirrors the original's simple_check_script: every ingredient
// must either be a seed or something an earlier line produced, every
// result must be produced at most once, and every seed or intermediate
// should eventually be consumed by something.
func SimpleCheck(crafts []Craft, seeds []string) SimpleCheckResult {
	current := make(map[string]int, len(seeds))
	for _, s := range seeds {
		current[s] = 0
	}
	crafted := make(map[string]bool)
	possibleMisplaced := make(map[string]bool)

	var result SimpleCheckResult

	for _, c := range crafts {
		for _, ing := range []string{c.A, c.B} {
			if _, ok := current[ing]; !ok {
				possibleMisplaced[ing] = true
				current[ing] = 1
			} else {
				current[ing]++
			}
		}

		if crafted[c.Result] {
			result.HasDuplicates = true
			result.Issues = append(result.Issues, fmt.Sprintf("line %d: result %q already produced earlier", c.Line, c.Result))
		}
		crafted[c.Result] = true
		if _, ok := current[c.Result]; !ok {
			current[c.Result] = 0
		}
	}

	for ingredient, uses := range current {
		if uses == 0 && ingredient != "" {
			result.Issues = append(result.Issues, fmt.Sprintf("ingredient %q is never used", ingredient))
		}
	}

	for element := range possibleMisplaced {
		if crafted[element] {
			result.HasMisplaced = true
			result.Issues = append(result.Issues, fmt.Sprintf("element %q is used before the line that produces it", element))
		} else {
			result.HasMissing = true
			result.Issues = append(result.Issues, fmt.Sprintf("element %q is never produced by this script", element))
		}
	}

	return result
}

// LoopOrder attempts to find a valid topological ordering of crafts
// starting from seeds, repeatedly admitting any craft whose ingredients
// are already available. ok is false if no further craft can be admitted
// before every craft has been ordered — a dependency cycle, or an
// ingredient that neither the seeds nor any craft produces.
func LoopOrder(crafts []Craft, seeds []string) (order []Craft, ok bool) {
	available := make(map[string]bool, len(seeds))
	for _, s := range seeds {
		available[s] = true
	}

	remaining := make([]Craft, len(crafts))
	copy(remaining, crafts)

	for len(remaining) > 0 {
		changed := false
		var next []Craft
		for _, c := range remaining {
			if available[c.A] && available[c.B] && !available[c.Result] {
				available[c.Result] = true
				order = append(order, c)
				changed = true
				continue
			}
			next = append(next, c)
		}
		remaining = next
		if !changed {
			return order, false
		}
	}
	return order, true
}

// StaticCheckResult bundles a structural pass with an ordering-repair
// attempt, mirroring the original's static_check_script: a misplaced-only
// script (no duplicates, no missing elements) is worth trying to
// topologically reorder before declaring it broken.
type StaticCheckResult struct {
	SimpleCheckResult
	Reordered    []Craft
	ReorderedOK  bool
	TriedReorder bool
}

// StaticCheck runs SimpleCheck and, when its result looks like pure
// misordering (not a real gap or cycle), also attempts LoopOrder.
func StaticCheck(crafts []Craft, seeds []string) StaticCheckResult {
	simple := SimpleCheck(crafts, seeds)
	result := StaticCheckResult{SimpleCheckResult: simple}

	if !simple.HasDuplicates && simple.HasMisplaced && !simple.HasMissing {
		result.TriedReorder = true
		result.Reordered, result.ReorderedOK = LoopOrder(crafts, seeds)
	}
	return result
}

// DynamicCheckResult reports, for every craft line, whether the handler
// agrees with the script's claimed result.
type DynamicCheckResult struct {
	Mismatches []DynamicMismatch
}

// DynamicMismatch is one line where the live combine result disagrees
// with what the script recorded.
type DynamicMismatch struct {
	Line    int
	A, B    string
	Claimed string
	Actual  string
}

// DynamicCheck replays every craft through h, the way the original's
// dynamic_check_script does via its RecipeHandler, and reports any line
// whose recorded result no longer matches the live answer.
func DynamicCheck(ctx context.Context, h *handler.Handler, crafts []Craft) (DynamicCheckResult, error) {
	var result DynamicCheckResult
	for _, c := range crafts {
		actual, err := h.Combine(ctx, c.A, c.B)
		if err != nil {
			return result, fmt.Errorf("speedrun: dynamic check line %d (%s + %s): %w", c.Line, c.A, c.B, err)
		}
		if actual != c.Result {
			result.Mismatches = append(result.Mismatches, DynamicMismatch{
				Line: c.Line, A: c.A, B: c.B, Claimed: c.Result, Actual: actual,
			})
		}
	}
	return result, nil
}

// CountUses tallies how many times each seed and intermediate is
// consumed as an ingredient across a well-formed script, mirroring the
// original's count_uses diagnostic.
func CountUses(crafts []Craft, seeds []string) map[string]int {
	counts := make(map[string]int, len(seeds)+len(crafts))
	for _, s := range seeds {
		counts[s] = 0
	}
	for _, c := range crafts {
		counts[c.A]++
		counts[c.B]++
		if _, ok := counts[c.Result]; !ok {
			counts[c.Result] = 0
		}
	}
	return counts
}
