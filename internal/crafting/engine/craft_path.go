package engine

import (
	"context"

	"github.com/gocraft/infinite-craft-oracle/pkg/crafting"
)

// CraftPathTo executes the craft_path_to tool: a single-level ingredient
// expansion for req.Target — every known pair that produces it.
func (e *Engine) CraftPathTo(ctx context.Context, req crafting.CraftPathToRequest) (*crafting.CraftPathToResponse, error) {
	id, known := e.graph.ByName[req.Target]
	if !known {
		return &crafting.CraftPathToResponse{Target: req.Target, Known: false}, nil
	}

	var recipes []crafting.RecipeInfo
	for _, pair := range e.graph.RecipesFor(id) {
		recipes = append(recipes, e.recipeInfoFor(id, pair))
	}

	return &crafting.CraftPathToResponse{
		Target:  req.Target,
		Recipes: recipes,
		Known:   true,
	}, nil
}
