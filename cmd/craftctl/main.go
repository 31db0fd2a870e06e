// Command craftctl is the discovery engine, speedrun optimizer, script
// checker, and MCP query server for an Infinite-Craft-style recipe store,
// all wired behind one binary.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	dbPath        string
	optimalDBPath string
	configPath    string
	seedsFlag     string
	verbose       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "craftctl",
	Short: "Recipe oracle, discovery engine, and speedrun optimizer",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "cache/recipes.db", "Path to the recipe SQLite database")
	rootCmd.PersistentFlags().StringVar(&optimalDBPath, "optimal-db", "cache/optimals.db", "Path to the optimal-recipe SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json", "Path to config.json")
	rootCmd.PersistentFlags().StringVar(&seedsFlag, "seeds", "Water,Fire,Wind,Earth", "Comma-separated starting elements")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(discoverCmd, optimizeCmd, staticCheckCmd, dynamicCheckCmd, compareCmd, toDiscordCmd, diagnoseCmd, serveCmd)
	diagnoseCmd.AddCommand(diagnoseRandomWalkCmd)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func splitSeeds(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
