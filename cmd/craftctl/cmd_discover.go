package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/config"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/handler"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/ids"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/oracle"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/search"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/store"
)

var (
	discoverDepth                 int
	discoverExtraDepth            int
	discoverAllowStartingElements bool
	discoverResumeLastRun         bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Run the iterative-deepening discovery search",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiscover(cmd.Context())
	},
}

func init() {
	discoverCmd.Flags().IntVar(&discoverDepth, "depth", 0, "Maximum search depth (0 = unbounded)")
	discoverCmd.Flags().IntVar(&discoverExtraDepth, "extra-depth", 0, "Keep recording optimal traces this many depths past an element's first discovery")
	discoverCmd.Flags().BoolVar(&discoverAllowStartingElements, "allow-starting-elements", false, "Allow a craft to produce an element already in the trace (such as a starting element) while that earlier copy is still unused")
	discoverCmd.Flags().BoolVar(&discoverResumeLastRun, "resume-last-run", false, "Resume from persistent.json instead of starting over")
}

func runDiscover(ctx context.Context) error {
	logger := newLogger()
	seeds := splitSeeds(seedsFlag)

	cfgFile, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	recipeDB, err := store.OpenRecipeDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening recipe database: %w", err)
	}
	defer func() { _ = recipeDB.Close() }()

	optimalDB, err := store.OpenOptimalDB(optimalDBPath)
	if err != nil {
		return fmt.Errorf("opening optimal database: %w", err)
	}
	defer func() { _ = optimalDB.Close() }()

	items := store.NewItemStore(recipeDB)
	if err := items.Bootstrap(ctx, seeds); err != nil {
		return fmt.Errorf("bootstrapping items: %w", err)
	}
	recipes := store.NewRecipeStore(recipeDB)
	optimals := store.NewOptimalStore(optimalDB)

	client := oracle.NewClient(cfgFile.OracleConfig(), logger)
	h := handler.New(items, recipes, client, cfgFile.HandlerConfig(), logger)

	registry := ids.NewRegistry()
	registry.SetID(ids.NothingName, ids.Nothing)
	registry.SetID(ids.UncertainNothingName, ids.UncertainNothing)

	searchCfg := search.DefaultConfig()
	searchCfg.Seeds = seeds
	searchCfg.MaxDepth = discoverDepth
	searchCfg.ExtraDepth = discoverExtraDepth
	searchCfg.AllowStartingElementsAsResults = discoverAllowStartingElements

	eng := search.New(registry, h, optimals, searchCfg, logger)

	if discoverResumeLastRun {
		if err := eng.Resume(); err != nil {
			return fmt.Errorf("resuming previous run: %w", err)
		}
	}

	runCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := eng.Run(runCtx); err != nil && runCtx.Err() == nil {
		return fmt.Errorf("discovery run: %w", err)
	}
	return nil
}
