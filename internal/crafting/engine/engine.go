// Package engine contains the recipe-graph query logic backing the MCP
// server: craft_query, craft_path_to, recipe_lookup, component_uses, and
// bill_of_materials, all answered from an in-memory graph.Graph snapshot.
package engine

import (
	"github.com/gocraft/infinite-craft-oracle/internal/craft/graph"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/ids"
	"github.com/gocraft/infinite-craft-oracle/pkg/crafting"
)

// Engine answers recipe-graph queries against a fixed graph snapshot.
// It does not write to the store; callers rebuild a new Engine (via
// graph.BuildFromStore) to pick up recipes discovered since it started.
type Engine struct {
	graph *graph.Graph
	seeds []string
}

// New builds an Engine over g, with seeds naming the free element set
// (used by BillOfMaterials as the base case that needs no crafting).
func New(g *graph.Graph, seeds []string) *Engine {
	return &Engine{graph: g, seeds: seeds}
}

// seedIDs resolves e.seeds to graph ids, skipping any seed unknown to
// the graph (a fresh database before its first discovery run).
func (e *Engine) seedIDs() []int64 {
	out := make([]int64, 0, len(e.seeds))
	for _, name := range e.seeds {
		if id, ok := e.graph.ByName[name]; ok {
			out = append(out, id)
		}
	}
	return out
}

// recipeInfoFor resolves a graph.Pair producing result into a wire
// RecipeInfo.
func (e *Engine) recipeInfoFor(result int64, pair graph.Pair) crafting.RecipeInfo {
	return crafting.RecipeInfo{
		Ingredient1: e.graph.Names[pair[0]],
		Ingredient2: e.graph.Names[pair[1]],
		Result:      e.graph.Names[result],
	}
}

// isSentinel reports whether name is one of the Nothing sentinels, which
// never appear as real recipe results.
func isSentinel(name string) bool {
	return name == ids.NothingName || name == ids.UncertainNothingName
}
