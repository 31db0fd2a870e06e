package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/optimize"
	"github.com/gocraft/infinite-craft-oracle/pkg/crafting"
)

// BillOfMaterials executes the bill_of_materials tool: the shortest craft
// sequence that produces req.Target from the configured seed set, subject
// to req.DeviationBound (zero or less means no bound). Every trace the search collects is tied for the
// same minimum craft count, so the first one answers both "how" and "how
// many".
func (e *Engine) BillOfMaterials(ctx context.Context, req crafting.BillOfMaterialsRequest) (*crafting.BillOfMaterialsResponse, error) {
	targetID, known := e.graph.ByName[req.Target]
	if !known {
		return nil, fmt.Errorf("bill of materials: unknown target %q", req.Target)
	}

	bound := req.DeviationBound
	if bound <= 0 {
		bound = math.MaxInt32
	}

	generations := e.generations()
	result, err := optimize.Run(e.graph, generations, e.seedIDs(), []int64{targetID}, optimize.Config{
		DeviationBound: bound,
	})
	if err != nil {
		return nil, fmt.Errorf("bill of materials for %q: %w", req.Target, err)
	}

	var steps []crafting.RecipeInfo
	if len(result.Traces) > 0 {
		for _, step := range result.Traces[0] {
			steps = append(steps, crafting.RecipeInfo{
				Ingredient1: e.graph.Names[step.U],
				Ingredient2: e.graph.Names[step.V],
				Result:      e.graph.Names[step.Result],
			})
		}
	}

	return &crafting.BillOfMaterialsResponse{
		Target:     req.Target,
		CraftSteps: steps,
		CraftCount: result.CraftCount,
	}, nil
}
