package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/config"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/diagnostic"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/handler"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/oracle"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/store"
)

var diagnoseSteps int

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Diagnostic harnesses for smoke-testing an oracle client/config",
}

var diagnoseRandomWalkCmd = &cobra.Command{
	Use:   "random-walk",
	Short: "Combine random known elements and log what gets discovered",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRandomWalk(cmd.Context())
	},
}

func init() {
	diagnoseRandomWalkCmd.Flags().IntVar(&diagnoseSteps, "steps", 20, "Number of random combines to perform")
}

func runRandomWalk(ctx context.Context) error {
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

	items := store.NewItemStore(recipeDB)
	if err := items.Bootstrap(ctx, seeds); err != nil {
		return fmt.Errorf("bootstrapping items: %w", err)
	}
	recipes := store.NewRecipeStore(recipeDB)
	client := oracle.NewClient(cfgFile.OracleConfig(), logger)
	h := handler.New(items, recipes, client, cfgFile.HandlerConfig(), logger)

	steps, err := diagnostic.RandomWalk(ctx, h, seeds, diagnoseSteps, nil, logger)
	if err != nil {
		return fmt.Errorf("random walk: %w", err)
	}

	for _, s := range steps {
		mark := ""
		if s.Discovered {
			mark = " (new)"
		}
		fmt.Printf("%s  +  %s  =  %s%s\n", s.A, s.B, s.Result, mark)
	}
	return nil
}
