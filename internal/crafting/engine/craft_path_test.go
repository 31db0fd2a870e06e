package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocraft/infinite-craft-oracle/pkg/crafting"
)

func TestCraftPathToReturnsEveryRecipeForATarget(t *testing.T) {
	e := buildTestEngine(t)

	resp, err := e.CraftPathTo(context.Background(), crafting.CraftPathToRequest{Target: "Steam"})
	require.NoError(t, err)
	require.True(t, resp.Known)
	require.Len(t, resp.Recipes, 1)
	require.Equal(t, "Steam", resp.Recipes[0].Result)
}

func TestCraftPathToReportsUnknownTarget(t *testing.T) {
	e := buildTestEngine(t)

	resp, err := e.CraftPathTo(context.Background(), crafting.CraftPathToRequest{Target: "Nonexistent"})
	require.NoError(t, err)
	require.False(t, resp.Known)
	require.Empty(t, resp.Recipes)
}
