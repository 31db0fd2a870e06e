package optimize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/graph"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/store"
)

func buildOptimizeGraph(t *testing.T) (*graph.Graph, map[string]int64) {
	t.Helper()
	ctx := context.Background()

	db, err := store.OpenRecipeDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	items := store.NewItemStore(db)
	recipes := store.NewRecipeStore(db)
	require.NoError(t, items.Bootstrap(ctx, []string{"Water", "Fire", "Earth"}))
	require.NoError(t, recipes.UpsertRecipe(ctx, "Water", "Fire", "Steam"))
	require.NoError(t, recipes.UpsertRecipe(ctx, "Steam", "Earth", "Mud Cloud"))
	require.NoError(t, recipes.UpsertRecipe(ctx, "Earth", "Water", "Mud"))

	g, err := graph.BuildFromStore(ctx, db)
	require.NoError(t, err)

	names := make(map[string]int64)
	for id, name := range g.Names {
		names[name] = id
	}
	return g, names
}

func TestAdjustedGenerationEnforcesMonotonicity(t *testing.T) {
	generations := map[int64]int{1: 0, 2: 0, 3: 1}
	require.Equal(t, 0, adjustedGeneration([]int64{1}, generations))
	require.Equal(t, 1, adjustedGeneration([]int64{1, 2}, generations))
	require.Equal(t, 2, adjustedGeneration([]int64{1, 2, 3}, generations))
	require.Equal(t, 0, adjustedGeneration(nil, generations))
}

func TestRunFindsShortestTraceForASingleTarget(t *testing.T) {
	g, names := buildOptimizeGraph(t)
	seeds := []int64{names["Water"], names["Fire"], names["Earth"]}
	generations := g.Generations(seeds)

	result, err := Run(g, generations, seeds, []int64{names["Steam"]}, Config{DeviationBound: 10})
	require.NoError(t, err)
	require.Equal(t, 1, result.CraftCount)
	require.NotEmpty(t, result.Traces)
	require.Equal(t, []Step{{U: names["Water"], V: names["Fire"], Result: names["Steam"]}}, result.Traces[0])
}

func TestRunOrdersMultiStepTraceTopologically(t *testing.T) {
	g, names := buildOptimizeGraph(t)
	seeds := []int64{names["Water"], names["Fire"], names["Earth"]}
	generations := g.Generations(seeds)

	result, err := Run(g, generations, seeds, []int64{names["Mud Cloud"]}, Config{DeviationBound: 10})
	require.NoError(t, err)
	require.Equal(t, 2, result.CraftCount)
	require.NotEmpty(t, result.Traces)

	trace := result.Traces[0]
	require.Len(t, trace, 2)
	require.Equal(t, names["Steam"], trace[0].Result)
	require.Equal(t, names["Mud Cloud"], trace[1].Result)
}

func TestRunRejectsTargetsBeyondDeviationBound(t *testing.T) {
	g, names := buildOptimizeGraph(t)
	seeds := []int64{names["Water"], names["Fire"], names["Earth"]}
	generations := g.Generations(seeds)

	_, err := Run(g, generations, seeds, []int64{names["Mud Cloud"]}, Config{DeviationBound: 0})
	require.Error(t, err)
}

func TestRunReturnsNoTraceForAnUnreachableTarget(t *testing.T) {
	g, names := buildOptimizeGraph(t)
	seeds := []int64{names["Water"], names["Fire"], names["Earth"]}
	generations := g.Generations(seeds)

	_, err := Run(g, generations, seeds, []int64{9999}, Config{DeviationBound: 10})
	require.Error(t, err)
}

func TestTopoSortOrdersIngredientsBeforeUses(t *testing.T) {
	trace := []Step{
		{U: 30, V: 20, Result: 40}, // Mud Cloud = Steam + Earth, built first
		{U: 10, V: 20, Result: 30}, // Steam = Water + Fire, built second
	}
	ordered := topoSort(trace)
	require.Equal(t, []Step{
		{U: 10, V: 20, Result: 30},
		{U: 30, V: 20, Result: 40},
	}, ordered)
}

func TestDependsOnDetectsTransitiveCycle(t *testing.T) {
	trace := []Step{{U: 1, V: 2, Result: 3}}
	require.True(t, dependsOn(trace, 3, 1))
	require.True(t, dependsOn(trace, 3, 2))
	require.False(t, dependsOn(trace, 3, 4))
	require.False(t, dependsOn(trace, 5, 1))
}
