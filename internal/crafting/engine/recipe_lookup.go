package engine

import (
	"context"
	"strings"

	"github.com/gocraft/infinite-craft-oracle/pkg/crafting"
)

// RecipeLookup executes the recipe_lookup tool: resolve req.Result
// exactly, or req.Search as a case-insensitive substring against every
// known element name, returning each match's recipes, uses, and
// generation.
func (e *Engine) RecipeLookup(ctx context.Context, req crafting.RecipeLookupRequest) (*crafting.RecipeLookupResponse, error) {
	resp := &crafting.RecipeLookupResponse{}

	var matchIDs []int64
	switch {
	case req.Result != "":
		if id, ok := e.graph.ByName[req.Result]; ok {
			matchIDs = append(matchIDs, id)
		}
	case req.Search != "":
		needle := strings.ToLower(req.Search)
		for id, name := range e.graph.Names {
			if strings.Contains(strings.ToLower(name), needle) {
				matchIDs = append(matchIDs, id)
			}
		}
	}

	generations := e.generations()

	for _, id := range matchIDs {
		var recipes []crafting.RecipeInfo
		for _, pair := range e.graph.RecipesFor(id) {
			recipes = append(recipes, e.recipeInfoFor(id, pair))
		}

		var usedIn []string
		for _, resultID := range e.graph.Uses(id) {
			usedIn = append(usedIn, e.graph.Names[resultID])
		}

		resp.Matches = append(resp.Matches, crafting.RecipeLookupMatch{
			Element:    e.graph.Names[id],
			Recipes:    recipes,
			UsedIn:     usedIn,
			Generation: generations[id],
		})
	}

	return resp, nil
}

// generations computes generation numbers from the configured seed set,
// recomputed per call since the graph itself is a frozen snapshot.
func (e *Engine) generations() map[int64]int {
	return e.graph.Generations(e.seedIDs())
}
