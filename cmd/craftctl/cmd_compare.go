package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/speedrun"
)

var compareCmd = &cobra.Command{
	Use:   "compare FILE1 FILE2",
	Short: "Diff two speedrun scripts' elements and crafts",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompare(args[0], args[1])
	},
}

func runCompare(file1, file2 string) error {
	original, err := parseScriptFile(file1)
	if err != nil {
		return err
	}
	updated, err := parseScriptFile(file2)
	if err != nil {
		return err
	}

	diff := speedrun.Compare(original, updated)
	speedrun.RenderTable(os.Stdout, diff)
	return nil
}

var toDiscordCmd = &cobra.Command{
	Use:   "to-discord FILE",
	Short: "Format a speedrun script as a Discord message embed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToDiscord(args[0])
	},
}

func runToDiscord(file string) error {
	crafts, err := parseScriptFile(file)
	if err != nil {
		return err
	}

	embed := speedrun.ToDiscordEmbed(file, crafts)
	data, err := speedrun.MarshalEmbed(embed)
	if err != nil {
		return fmt.Errorf("marshaling embed: %w", err)
	}

	fmt.Println(string(data))
	return nil
}
