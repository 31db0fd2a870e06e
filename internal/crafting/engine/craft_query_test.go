package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocraft/infinite-craft-oracle/pkg/crafting"
)

func TestCraftQueryReturnsRecipesWithBothIngredientsKnown(t *testing.T) {
	e := buildTestEngine(t)

	resp, err := e.CraftQuery(context.Background(), crafting.CraftQueryRequest{
		Known: []string{"Water", "Fire", "Earth"},
	})
	require.NoError(t, err)
	require.Equal(t, 3, resp.TotalKnown)
	require.Len(t, resp.Craftable, 2)

	results := map[string]bool{}
	for _, r := range resp.Craftable {
		results[r.Result] = true
	}
	require.True(t, results["Steam"])
	require.True(t, results["Mud"])
	require.False(t, results["Mud Cloud"], "Mud Cloud needs Steam, not known directly")
}

func TestCraftQueryAppliesLimit(t *testing.T) {
	e := buildTestEngine(t)

	resp, err := e.CraftQuery(context.Background(), crafting.CraftQueryRequest{
		Known: []string{"Water", "Fire", "Earth"},
		Limit: 1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Craftable, 1)
}

func TestCraftQueryIgnoresUnknownNames(t *testing.T) {
	e := buildTestEngine(t)

	resp, err := e.CraftQuery(context.Background(), crafting.CraftQueryRequest{
		Known: []string{"Nonexistent"},
	})
	require.NoError(t, err)
	require.Equal(t, 0, resp.TotalKnown)
	require.Empty(t, resp.Craftable)
}
