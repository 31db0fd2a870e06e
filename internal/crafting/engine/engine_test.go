package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/graph"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/store"
)

func buildTestEngine(t *testing.T) *Engine {
	t.Helper()
	ctx := context.Background()

	db, err := store.OpenRecipeDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	seeds := []string{"Water", "Fire", "Earth", "Wind"}
	items := store.NewItemStore(db)
	recipes := store.NewRecipeStore(db)
	require.NoError(t, items.Bootstrap(ctx, seeds))
	require.NoError(t, recipes.UpsertRecipe(ctx, "Water", "Fire", "Steam"))
	require.NoError(t, recipes.UpsertRecipe(ctx, "Steam", "Earth", "Mud Cloud"))
	require.NoError(t, recipes.UpsertRecipe(ctx, "Earth", "Water", "Mud"))

	g, err := graph.BuildFromStore(ctx, db)
	require.NoError(t, err)

	return New(g, seeds)
}
