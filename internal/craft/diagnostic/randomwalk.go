// Package diagnostic holds smoke-test harnesses for exercising an oracle
// client/config without running the full discovery search.
package diagnostic

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/handler"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/ids"
)

// Step is one combine attempt in a random walk.
type Step struct {
	A, B       string
	Result     string
	Discovered bool
}

// RandomWalk repeatedly combines two elements picked uniformly at random
// from the set of elements discovered so far, starting from seeds. It is
// a port of the original's random_walk diagnostic: useful for confirming
// an oracle client and config are wired correctly before committing to a
// full iterative-deepening run. rng defaults to a fixed-seed source when
// nil, so a caller that wants reproducible output can pass one in.
func RandomWalk(ctx context.Context, h *handler.Handler, seeds []string, steps int, rng *rand.Rand, logger *slog.Logger) ([]Step, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = slog.Default()
	}

	current := append([]string{}, seeds...)
	known := make(map[string]bool, len(seeds))
	for _, s := range seeds {
		known[s] = true
	}

	out := make([]Step, 0, steps)
	for i := 0; i < steps; i++ {
		a := current[rng.Intn(len(current))]
		b := current[rng.Intn(len(current))]

		result, err := h.Combine(ctx, a, b)
		if err != nil {
			return out, fmt.Errorf("diagnostic: random walk step %d (%s + %s): %w", i+1, a, b, err)
		}

		discovered := false
		if result != ids.NothingName && result != ids.UncertainNothingName && !known[result] {
			known[result] = true
			current = append(current, result)
			discovered = true
		}

		logger.Info("random walk step", "step", i+1, "a", a, "b", b, "result", result, "discovered", discovered)
		out = append(out, Step{A: a, B: b, Result: result, Discovered: discovered})
	}

	logger.Info("random walk complete", "steps", steps, "items_known", len(current))
	return out, nil
}
