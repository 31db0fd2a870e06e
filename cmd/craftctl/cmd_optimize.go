package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/config"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/graph"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/handler"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/ids"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/optimize"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/oracle"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/speedrun"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/store"
)

var (
	optimizeTargets          []string
	optimizeLocal            bool
	optimizeDeviation        int
	optimizeExtraGenerations int
	optimizeLocalGenerations int
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize FILE",
	Short: "Compute the shortest craft sequence for a target, seeded from a baseline speedrun script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOptimize(cmd.Context(), args[0])
	},
}

func init() {
	optimizeCmd.Flags().StringArrayVar(&optimizeTargets, "target", nil, "Target element(s) to optimize for (default: the file's last craft result)")
	optimizeCmd.Flags().BoolVar(&optimizeLocal, "local", false, "Restrict every lookup to the local cache, never calling the oracle")
	optimizeCmd.Flags().IntVar(&optimizeDeviation, "deviation", -1, "Maximum off-path elements the plan may touch (-1 = unbounded)")
	optimizeCmd.Flags().IntVar(&optimizeExtraGenerations, "extra-generations", 1, "Oracle-backed generations to expand the working item set by before optimizing")
	optimizeCmd.Flags().IntVar(&optimizeLocalGenerations, "local-generations", 0, "Cache-only generations to expand the working item set by before optimizing")
}

func runOptimize(ctx context.Context, file string) error {
	logger := newLogger()
	seeds := splitSeeds(seedsFlag)

	text, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}
	crafts, errs := speedrun.Parse(string(text))
	if len(errs) > 0 {
		return fmt.Errorf("parsing %s: %w", file, errs[0])
	}

	cfgFile, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	handlerCfg := cfgFile.HandlerConfig()
	if optimizeLocal {
		handlerCfg.LocalOnly = true
	}

	recipeDB, err := store.OpenRecipeDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening recipe database: %w", err)
	}
	defer func() { _ = recipeDB.Close() }()

	items := store.NewItemStore(recipeDB)
	if err := items.Bootstrap(ctx, seeds); err != nil {
		return fmt.Errorf("bootstrapping items: %w", err)
	}
	recipeStore := store.NewRecipeStore(recipeDB)

	client := oracle.NewClient(cfgFile.OracleConfig(), logger)
	h := handler.New(items, recipeStore, client, handlerCfg, logger)

	known := append([]string{}, seeds...)
	for _, c := range crafts {
		known = append(known, c.Result)
	}
	known = dedupeStrings(known)

	for gen := 0; gen < optimizeExtraGenerations; gen++ {
		added, err := expandGeneration(ctx, h.Combine, known)
		if err != nil {
			return fmt.Errorf("extra generation %d: %w", gen+1, err)
		}
		logger.Info("extra generation complete", "generation", gen+1, "new_items", len(added))
		known = append(known, added...)
	}
	for gen := 0; gen < optimizeLocalGenerations; gen++ {
		added, err := expandGeneration(ctx, localOnlyCombine(recipeStore), known)
		if err != nil {
			return fmt.Errorf("local generation %d: %w", gen+1, err)
		}
		logger.Info("local generation complete", "generation", gen+1, "new_items", len(added))
		known = append(known, added...)
	}

	g, err := graph.BuildFromStore(ctx, recipeDB)
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}

	targets := optimizeTargets
	if len(targets) == 0 && len(crafts) > 0 {
		targets = []string{crafts[len(crafts)-1].Result}
	}
	targetIDs, err := resolveNames(g, targets)
	if err != nil {
		return err
	}

	freeIDs, err := resolveNames(g, dedupeStrings(known))
	if err != nil {
		return err
	}

	generations := g.Generations(mustResolve(g, seeds))

	deviation := optimizeDeviation
	if deviation < 0 {
		deviation = math.MaxInt32
	}

	result, err := optimize.Run(g, generations, freeIDs, targetIDs, optimize.Config{DeviationBound: deviation})
	if err != nil {
		return fmt.Errorf("optimizing: %w", err)
	}

	fmt.Printf("%d crafts\n", result.CraftCount)
	for i, trace := range result.Traces {
		if len(result.Traces) > 1 {
			fmt.Printf("-- solution %d --\n", i+1)
		}
		for _, step := range trace {
			fmt.Printf("%s  +  %s  =  %s\n", g.Names[step.U], g.Names[step.V], g.Names[step.Result])
		}
	}
	return nil
}

// expandGeneration combines every pair drawn from known via combine,
// returning the newly discovered, not-yet-known result names.
func expandGeneration(ctx context.Context, combine func(context.Context, string, string) (string, error), known []string) ([]string, error) {
	seenKnown := make(map[string]bool, len(known))
	for _, name := range known {
		seenKnown[name] = true
	}

	var added []string
	seenNew := make(map[string]bool)
	for i, a := range known {
		for _, b := range known[i:] {
			result, err := combine(ctx, a, b)
			if err != nil {
				return nil, err
			}
			if result == "" || result == ids.NothingName || result == ids.UncertainNothingName {
				continue
			}
			if seenKnown[result] || seenNew[result] {
				continue
			}
			seenNew[result] = true
			added = append(added, result)
		}
	}
	return added, nil
}

// localOnlyCombine adapts RecipeStore.Lookup to the combine function shape,
// for generation expansion that must never reach the oracle.
func localOnlyCombine(recipes *store.RecipeStore) func(context.Context, string, string) (string, error) {
	return func(ctx context.Context, a, b string) (string, error) {
		result, found, err := recipes.Lookup(ctx, a, b)
		if err != nil || !found {
			return "", err
		}
		return result, nil
	}
}

func resolveNames(g *graph.Graph, names []string) ([]int64, error) {
	out := make([]int64, 0, len(names))
	for _, name := range names {
		id, ok := g.ByName[name]
		if !ok {
			return nil, fmt.Errorf("unknown element %q", name)
		}
		out = append(out, id)
	}
	return out, nil
}

// mustResolve resolves names known to exist in g (the configured seed set,
// already bootstrapped into the store before the graph was built).
func mustResolve(g *graph.Graph, names []string) []int64 {
	out := make([]int64, 0, len(names))
	for _, name := range names {
		if id, ok := g.ByName[name]; ok {
			out = append(out, id)
		}
	}
	return out
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
