package engine

import (
	"context"
	"sort"

	"github.com/gocraft/infinite-craft-oracle/pkg/crafting"
)

// ComponentUses executes the component_uses tool: every known recipe
// that consumes req.Element as one of its two ingredients.
func (e *Engine) ComponentUses(ctx context.Context, req crafting.ComponentUsesRequest) (*crafting.ComponentUsesResponse, error) {
	resp := &crafting.ComponentUsesResponse{Element: req.Element}

	id, known := e.graph.ByName[req.Element]
	if !known {
		return resp, nil
	}

	var uses []crafting.RecipeInfo
	for _, resultID := range e.graph.Uses(id) {
		for _, pair := range e.graph.RecipesFor(resultID) {
			if pair[0] == id || pair[1] == id {
				uses = append(uses, e.recipeInfoFor(resultID, pair))
			}
		}
	}

	sort.Slice(uses, func(i, j int) bool { return uses[i].Result < uses[j].Result })

	resp.UsedIn = uses
	resp.TotalUses = len(uses)
	return resp, nil
}
