package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocraft/infinite-craft-oracle/pkg/crafting"
)

func TestBillOfMaterialsFindsShortestTraceForASingleCraft(t *testing.T) {
	e := buildTestEngine(t)

	resp, err := e.BillOfMaterials(context.Background(), crafting.BillOfMaterialsRequest{Target: "Steam", DeviationBound: 0})
	require.NoError(t, err)
	require.Equal(t, 1, resp.CraftCount)
	require.Equal(t, []crafting.RecipeInfo{{Ingredient1: "Water", Ingredient2: "Fire", Result: "Steam"}}, resp.CraftSteps)
}

func TestBillOfMaterialsOrdersAMultiStepTraceTopologically(t *testing.T) {
	e := buildTestEngine(t)

	resp, err := e.BillOfMaterials(context.Background(), crafting.BillOfMaterialsRequest{Target: "Mud Cloud", DeviationBound: 0})
	require.NoError(t, err)
	require.Equal(t, 2, resp.CraftCount)
	require.Equal(t, "Steam", resp.CraftSteps[0].Result)
	require.Equal(t, "Mud Cloud", resp.CraftSteps[1].Result)
}

func TestBillOfMaterialsOnUnknownTargetReturnsAnError(t *testing.T) {
	e := buildTestEngine(t)

	_, err := e.BillOfMaterials(context.Background(), crafting.BillOfMaterialsRequest{Target: "Nonexistent"})
	require.Error(t, err)
}
