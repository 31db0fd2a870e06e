package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/handler"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/ids"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/oracle"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/store"
)

// Config holds the IDDFS engine's tunables (spec.md §4.6/§7).
type Config struct {
	Seeds                          []string
	AllowStartingElementsAsResults bool
	MaxDepth                       int
	ExtraDepth                     int
	AutosaveInterval               int
	PersistentStatePath            string
}

// DefaultConfig returns the IDDFS defaults.
func DefaultConfig() Config {
	return Config{
		Seeds:               []string{"Water", "Fire", "Wind", "Earth"},
		AutosaveInterval:    500,
		PersistentStatePath: "persistent.json",
	}
}

// Engine runs the iterative-deepening discovery search, resolving crafts
// through a Handler and tracking the best (lowest-depth) recipe found for
// every discovered element.
type Engine struct {
	registry *ids.Registry
	handler  *handler.Handler
	optimals *store.OptimalStore
	cfg      Config
	logger   *slog.Logger

	visited       map[int64]bool
	bestDepths    map[int64]int
	autosaveCount int
	resumeKeys    []int64
	runID         string
	lastSavedKeys []int64
	seeds         []int64
}

// New builds an Engine. Seeds missing from registry are assigned ids when
// the engine resolves cfg.Seeds.
func New(registry *ids.Registry, h *handler.Handler, optimals *store.OptimalStore, cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		registry:   registry,
		handler:    h,
		optimals:   optimals,
		cfg:        cfg,
		logger:     logger,
		visited:    make(map[int64]bool),
		bestDepths: make(map[int64]int),
	}
}

// Resume loads the on-disk persistent state (if any) and primes the
// engine's resume cursor and best-depth table from it.
func (e *Engine) Resume() error {
	state, err := LoadPersistentState(e.cfg.PersistentStatePath)
	if err != nil {
		return err
	}
	if state == nil {
		e.runID = uuid.NewString()
		return nil
	}

	e.resumeKeys = state.GameState
	e.runID = state.RunID
	for name, depth := range state.BestDepths {
		e.bestDepths[e.registry.GetID(name)] = depth
	}
	return nil
}

// seedIDs resolves cfg.Seeds to ids, assigning new ones if this is the
// first time they've been seen, and caches the result for the run.
func (e *Engine) seedIDs() []int64 {
	if e.seeds != nil {
		return e.seeds
	}
	out := make([]int64, len(e.cfg.Seeds))
	for i, name := range e.cfg.Seeds {
		out[i] = e.registry.GetID(ids.ToStartCase(name))
	}
	e.seeds = out
	return out
}

// Run performs the full iterative-deepening search up to cfg.MaxDepth
// (0 means unbounded — stop only when a depth discovers nothing new and
// has caught up with any resume cursor).
func (e *Engine) Run(ctx context.Context) error {
	seeds := e.seedIDs()
	curDepth := 1
	if len(e.resumeKeys) > 0 {
		curDepth = len(e.resumeKeys)
	}

	start := time.Now()
	for {
		root := NewRoot(seeds)
		prevVisited := len(e.visited)

		n, err := e.dls(ctx, root, curDepth)
		if err != nil {
			return err
		}

		e.logger.Info("search depth complete",
			"depth", curDepth,
			"states_processed", n,
			"elements_discovered", humanize.Comma(int64(len(e.visited))),
			"elapsed", humanize.Time(start),
		)

		if e.cfg.MaxDepth > 0 && curDepth >= e.cfg.MaxDepth {
			break
		}
		if len(e.visited) == prevVisited && curDepth > len(e.resumeKeys) {
			break
		}
		curDepth++
	}

	return e.save()
}

// dls is the depth-limited search core described in spec.md §4.6.
func (e *Engine) dls(ctx context.Context, state *State, depthRemaining int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	n0 := len(e.seedIDs())
	if e.resumeKeys != nil {
		reach := (state.ItemCount() - n0) + depthRemaining
		if len(e.resumeKeys) >= reach && lessKeys(state.Keys(), e.resumeKeys) {
			return 0, nil
		}
	}

	if depthRemaining == 0 {
		e.lastSavedKeys = state.Keys()
		if err := e.processNode(ctx, state); err != nil {
			return 0, err
		}
		return 1, nil
	}

	tailName := e.registry.GetName(state.TailItem())
	if len(tailName) > oracle.WordCombineCharLimit {
		return 0, nil
	}
	if e.cfg.AllowStartingElementsAsResults {
		if state.indexOf(state.TailItem()) != state.ItemCount()-1 {
			return 0, nil
		}
	}

	unused := state.UnusedItems()
	count := 0

	switch {
	case len(unused) > depthRemaining+1:
		return 0, nil

	case len(unused) > depthRemaining:
		seen := make(map[int64]bool)
		for j := 0; j < len(unused); j++ {
			for i := 0; i < j; i++ {
				key := ids.Encode(int64(unused[i]), int64(unused[j]))
				child, err := e.tryChild(ctx, state, key, seen)
				if err != nil {
					return 0, err
				}
				if child == nil {
					continue
				}
				n, err := e.dls(ctx, child, depthRemaining-1)
				if err != nil {
					return 0, err
				}
				count += n
			}
		}

	default:
		lower := int64(0)
		if depthRemaining == 1 && state.PairKey() != -1 {
			lower = ids.Limit(int64(state.ItemCount() - 1))
		}
		upper := ids.Limit(int64(state.ItemCount()))

		seen := make(map[int64]bool)
		for key := lower; key < upper; key++ {
			child, err := e.tryChild(ctx, state, key, seen)
			if err != nil {
				return 0, err
			}
			if child == nil {
				continue
			}
			n, err := e.dls(ctx, child, depthRemaining-1)
			if err != nil {
				return 0, err
			}
			count += n
		}
	}

	return count, nil
}

// tryChild resolves pairKey's combine result through the handler and
// attempts to extend state with it, deduping against seen (results
// already produced by an earlier pair-key from this same parent).
func (e *Engine) tryChild(ctx context.Context, state *State, pairKey int64, seen map[int64]bool) (*State, error) {
	if pairKey <= state.PairKey() || pairKey >= ids.Limit(int64(state.ItemCount())) {
		return nil, nil
	}

	u, v, err := ids.Decode(pairKey)
	if err != nil {
		return nil, nil
	}

	aName := e.registry.GetName(state.ItemAt(int(u)))
	bName := e.registry.GetName(state.ItemAt(int(v)))

	result, err := e.handler.Combine(ctx, aName, bName)
	if err != nil {
		return nil, fmt.Errorf("search: combining %s+%s: %w", aName, bName, err)
	}
	if result == "" || result == ids.NothingName || result == ids.UncertainNothingName {
		return nil, nil
	}

	resultID := e.registry.GetID(result)
	if seen[resultID] {
		return nil, nil
	}

	child, ok := state.Child(pairKey, resultID, e.cfg.AllowStartingElementsAsResults)
	if !ok {
		return nil, nil
	}
	seen[resultID] = true
	return child, nil
}

// processNode records the leaf of a completed craft sequence: the
// discovery flag, the best-depth table, and (if this depth is within
// ExtraDepth of the current best) an appended optimal-trace entry.
func (e *Engine) processNode(ctx context.Context, state *State) error {
	tail := state.TailItem()
	n0 := len(e.seedIDs())
	depth := state.ItemCount() - n0

	if !e.visited[tail] {
		e.visited[tail] = true
		e.autosaveCount++
		if e.autosaveCount >= e.cfg.AutosaveInterval {
			e.autosaveCount = 0
			if err := e.save(); err != nil {
				return err
			}
		}
	}

	best, ok := e.bestDepths[tail]
	if !ok {
		e.bestDepths[tail] = depth
		best = depth
	}

	if depth <= best+e.cfg.ExtraDepth {
		name := e.registry.GetName(tail)
		if err := e.optimals.AddOptimal(ctx, name, state.Trace(e.registry)); err != nil {
			return fmt.Errorf("search: saving optimal recipe for %q: %w", name, err)
		}
	}
	return nil
}

// save writes the current resume cursor and best-depth table to disk.
func (e *Engine) save() error {
	bestDepths := make(map[string]int, len(e.bestDepths))
	for id, depth := range e.bestDepths {
		bestDepths[e.registry.GetName(id)] = depth
	}
	return SavePersistentState(e.cfg.PersistentStatePath, &PersistentState{
		GameState:  e.lastSavedKeys,
		BestDepths: bestDepths,
		RunID:      e.runID,
	})
}
