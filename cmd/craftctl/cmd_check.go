package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/config"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/handler"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/oracle"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/speedrun"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/store"
)

var staticCheckCmd = &cobra.Command{
	Use:   "static-check FILE",
	Short: "Check a speedrun script's ingredient ordering without making any network calls",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStaticCheck(args[0])
	},
}

var dynamicCheckCmd = &cobra.Command{
	Use:   "dynamic-check FILE",
	Short: "Re-resolve every craft in a speedrun script against the oracle/store and report mismatches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDynamicCheck(cmd.Context(), args[0])
	},
}

func parseScriptFile(file string) ([]speedrun.Craft, error) {
	text, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	crafts, errs := speedrun.Parse(string(text))
	if len(errs) > 0 {
		return nil, fmt.Errorf("parsing %s: %w", file, errs[0])
	}
	return crafts, nil
}

func runStaticCheck(file string) error {
	crafts, err := parseScriptFile(file)
	if err != nil {
		return err
	}

	seeds := splitSeeds(seedsFlag)
	result := speedrun.StaticCheck(crafts, seeds)

	if !result.HasDuplicates && !result.HasMisplaced && !result.HasMissing {
		fmt.Println("no issues found")
		return nil
	}

	for _, issue := range result.Issues {
		fmt.Println(issue)
	}
	if result.TriedReorder {
		if result.ReorderedOK {
			fmt.Println("a valid reordering exists:")
			for _, c := range result.Reordered {
				fmt.Printf("%s  +  %s  =  %s\n", c.A, c.B, c.Result)
			}
		} else {
			fmt.Println("no valid reordering exists")
		}
	}
	return fmt.Errorf("static check found issues in %s", file)
}

func runDynamicCheck(ctx context.Context, file string) error {
	crafts, err := parseScriptFile(file)
	if err != nil {
		return err
	}

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

	result, err := speedrun.DynamicCheck(ctx, h, crafts)
	if err != nil {
		return fmt.Errorf("dynamic check: %w", err)
	}

	if len(result.Mismatches) == 0 {
		fmt.Println("no mismatches found")
		return nil
	}

	for _, m := range result.Mismatches {
		fmt.Printf("line %d: %s + %s claimed %s, actual %s\n", m.Line, m.A, m.B, m.Claimed, m.Actual)
	}
	return fmt.Errorf("dynamic check found %d mismatch(es) in %s", len(result.Mismatches), file)
}
