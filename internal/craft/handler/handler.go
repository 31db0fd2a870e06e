// Package handler is the façade that combines the persistent store and the
// oracle client into a single combine/combine_batch surface, implementing
// the local-first, oracle-fallback, nothing-reverification policy.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/ids"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/oracle"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/store"
)

// Config holds the policy knobs recognized under config.json's top level
// (spec.md §4.3/§4.4).
type Config struct {
	LocalOnly             bool
	TrustCacheNothing      bool
	TrustFirstRunNothing   bool
	NothingVerification    int
	NothingCooldown        time.Duration
	PrintNewRecipes        bool
}

// DefaultConfig returns the handler policy defaults.
func DefaultConfig() Config {
	return Config{
		NothingVerification: 3,
		NothingCooldown:     5 * time.Second,
	}
}

// Combined is one resolved (a, b) -> result triple, as returned by
// CombineBatch.
type Combined struct {
	A      string
	B      string
	Result string
}

// Handler is the store+oracle façade described in spec.md §4.4.
type Handler struct {
	items   *store.ItemStore
	recipes *store.RecipeStore
	oracle  *oracle.Client
	cfg     Config
	logger  *slog.Logger
}

// New builds a Handler over the given item/recipe stores and oracle
// client.
func New(items *store.ItemStore, recipes *store.RecipeStore, client *oracle.Client, cfg Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{items: items, recipes: recipes, oracle: client, cfg: cfg, logger: logger}
}

// Combine resolves a+b to a result name, preferring the local store,
// falling back to the oracle, and re-verifying "Nothing" oracle answers
// before committing them, per spec.md §4.4.
func (h *Handler) Combine(ctx context.Context, a, b string) (string, error) {
	a = ids.ToStartCase(a)
	b = ids.ToStartCase(b)

	local, ok, err := h.recipes.Lookup(ctx, a, b)
	if err != nil {
		return "", fmt.Errorf("handler: looking up %s+%s: %w", a, b, err)
	}
	if ok && local != ids.UncertainNothingName {
		return local, nil
	}

	if h.cfg.LocalOnly {
		return ids.NothingName, nil
	}

	answer, err := h.resolveViaOracle(ctx, a, b, ok)
	if err != nil {
		return "", err
	}

	if err := h.persist(ctx, a, b, answer); err != nil {
		return "", err
	}
	if answer.Result == ids.UncertainNothingName {
		return ids.NothingName, nil
	}
	return answer.Result, nil
}

// resolveViaOracle asks the oracle for a+b and, if the answer is "Nothing",
// re-asks up to cfg.NothingVerification attempts in total; seenBefore
// decides which trust setting applies if every attempt still says "Nothing".
func (h *Handler) resolveViaOracle(ctx context.Context, a, b string, seenBefore bool) (oracle.Result, error) {
	answer, err := h.oracle.RequestSingle(ctx, a, b)
	if err != nil {
		return oracle.Result{}, fmt.Errorf("handler: oracle request for %s+%s: %w", a, b, err)
	}
	if answer.Result != ids.NothingName {
		return answer, nil
	}

	attempts := h.cfg.NothingVerification
	if attempts < 1 {
		attempts = 1
	}
	for i := 1; i < attempts; i++ {
		select {
		case <-ctx.Done():
			return oracle.Result{}, ctx.Err()
		case <-time.After(h.cfg.NothingCooldown):
		}

		reverify, err := h.oracle.RequestSingle(ctx, a, b)
		if err != nil {
			return oracle.Result{}, fmt.Errorf("handler: nothing re-verification for %s+%s: %w", a, b, err)
		}
		if reverify.Result != ids.NothingName {
			return reverify, nil
		}
	}

	trust := h.cfg.TrustCacheNothing
	if !seenBefore {
		trust = h.cfg.TrustFirstRunNothing
	}
	if trust {
		return oracle.Result{Result: ids.NothingName}, nil
	}
	return oracle.Result{Result: ids.UncertainNothingName}, nil
}

// persist writes the resolved result into both stores, OR-ing in the
// discovery flag.
func (h *Handler) persist(ctx context.Context, a, b string, answer oracle.Result) error {
	if err := h.recipes.UpsertRecipe(ctx, a, b, answer.Result); err != nil {
		return fmt.Errorf("handler: persisting %s+%s=%s: %w", a, b, answer.Result, err)
	}
	if answer.Result == ids.NothingName || answer.Result == ids.UncertainNothingName {
		return nil
	}
	if err := h.items.UpsertItem(ctx, answer.Result, answer.Emoji, answer.IsNew); err != nil {
		return fmt.Errorf("handler: upserting item %q: %w", answer.Result, err)
	}
	if answer.IsNew && h.cfg.PrintNewRecipes {
		h.logger.Info("discovered new element", "a", a, "b", b, "result", answer.Result)
	}
	return nil
}

// CombineBatch resolves many pairs at once. Pairs with a trusted local
// value are answered without contacting the oracle; the rest are chunked
// through the oracle client. Batch mode never re-verifies "Nothing"
// answers, matching spec.md §4.4's provisional-nothing caveat.
func (h *Handler) CombineBatch(ctx context.Context, pairs [][2]string) ([]Combined, error) {
	out := make([]Combined, len(pairs))
	var pendingIdx []int
	var pendingPairs [][2]string

	for i, p := range pairs {
		a, b := ids.ToStartCase(p[0]), ids.ToStartCase(p[1])
		local, ok, err := h.recipes.Lookup(ctx, a, b)
		if err != nil {
			return nil, fmt.Errorf("handler: looking up %s+%s: %w", a, b, err)
		}
		if ok && local != ids.UncertainNothingName {
			out[i] = Combined{A: a, B: b, Result: local}
			continue
		}
		out[i] = Combined{A: a, B: b}
		pendingIdx = append(pendingIdx, i)
		pendingPairs = append(pendingPairs, [2]string{a, b})
	}

	if len(pendingPairs) == 0 {
		return out, nil
	}

	if h.cfg.LocalOnly {
		for _, i := range pendingIdx {
			out[i].Result = ids.NothingName
		}
		return out, nil
	}

	results, err := h.oracle.RequestBatch(ctx, pendingPairs)
	if err != nil {
		return nil, fmt.Errorf("handler: oracle batch request: %w", err)
	}

	for j, i := range pendingIdx {
		answer := results[j]
		if err := h.persist(ctx, out[i].A, out[i].B, answer); err != nil {
			return nil, err
		}
		out[i].Result = answer.Result
	}
	return out, nil
}
