package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/graph"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/store"
	"github.com/gocraft/infinite-craft-oracle/internal/crafting/engine"
	"github.com/gocraft/infinite-craft-oracle/internal/crafting/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP query server over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	logger := newLogger()
	seeds := splitSeeds(seedsFlag)

	recipeDB, err := store.OpenRecipeDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening recipe database: %w", err)
	}
	defer func() { _ = recipeDB.Close() }()

	g, err := graph.BuildFromStore(ctx, recipeDB)
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}

	eng := engine.New(g, seeds)
	server := mcp.NewServer(eng, logger)

	runCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting MCP server", "db", dbPath)
	if err := server.Run(runCtx); err != nil && runCtx.Err() == nil {
		return fmt.Errorf("server error: %w", err)
	}
	fmt.Fprintln(os.Stderr, "server stopped")
	return nil
}
