package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocraft/infinite-craft-oracle/pkg/crafting"
)

func TestRecipeLookupByExactResult(t *testing.T) {
	e := buildTestEngine(t)

	resp, err := e.RecipeLookup(context.Background(), crafting.RecipeLookupRequest{Result: "Steam"})
	require.NoError(t, err)
	require.Len(t, resp.Matches, 1)

	m := resp.Matches[0]
	require.Equal(t, "Steam", m.Element)
	require.Len(t, m.Recipes, 1)
	require.Equal(t, 1, m.Generation)
	require.Contains(t, m.UsedIn, "Mud Cloud")
}

func TestRecipeLookupBySubstringSearch(t *testing.T) {
	e := buildTestEngine(t)

	resp, err := e.RecipeLookup(context.Background(), crafting.RecipeLookupRequest{Search: "mud"})
	require.NoError(t, err)

	names := map[string]bool{}
	for _, m := range resp.Matches {
		names[m.Element] = true
	}
	require.True(t, names["Mud"])
	require.True(t, names["Mud Cloud"])
}

func TestRecipeLookupWithNoCriteriaReturnsNoMatches(t *testing.T) {
	e := buildTestEngine(t)

	resp, err := e.RecipeLookup(context.Background(), crafting.RecipeLookupRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Matches)
}
