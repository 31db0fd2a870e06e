// Package graph builds an in-memory recipe dependency graph from a
// persisted store snapshot, for the A* speedrun optimizer and for MCP
// query tools (recipe_lookup, component_uses, bill_of_materials) that
// need fast forward/backward traversal without touching SQL per call.
package graph

import (
	"context"
	"fmt"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/store"
)

// Pair is an ingredient pair with u <= v by id; BuildFromStore puts each
// stored recipe's ingredients into that order.
type Pair [2]int64

// Graph is an immutable snapshot of every item and recipe in a store,
// indexed for fast forward (result -> producing pairs) and backward
// (ingredient -> results it feeds into) lookups.
type Graph struct {
	Names    map[int64]string
	ByName   map[string]int64
	Forward  map[int64][]Pair
	Backward map[int64][]int64
}

// BuildFromStore loads every item and recipe from db and indexes them.
// The returned Graph is read-only and safe for concurrent reads.
func BuildFromStore(ctx context.Context, db *store.DB) (*Graph, error) {
	items := store.NewItemStore(db)
	recipes := store.NewRecipeStore(db)

	allItems, err := items.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("graph: loading items: %w", err)
	}
	allRecipes, err := recipes.AllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("graph: loading recipes: %w", err)
	}

	g := &Graph{
		Names:    make(map[int64]string, len(allItems)),
		ByName:   make(map[string]int64, len(allItems)),
		Forward:  make(map[int64][]Pair),
		Backward: make(map[int64][]int64),
	}

	for _, it := range allItems {
		g.Names[it.ID] = it.Name
		g.ByName[it.Name] = it.ID
	}

	for _, r := range allRecipes {
		u, v := r.Ingredient1ID, r.Ingredient2ID
		if v < u {
			u, v = v, u
		}
		g.Forward[r.ResultID] = append(g.Forward[r.ResultID], Pair{u, v})
		g.Backward[r.Ingredient1ID] = append(g.Backward[r.Ingredient1ID], r.ResultID)
		if r.Ingredient2ID != r.Ingredient1ID {
			g.Backward[r.Ingredient2ID] = append(g.Backward[r.Ingredient2ID], r.ResultID)
		}
	}

	return g, nil
}

// Generations runs a multi-source BFS from seeds over the recipe
// dependency hypergraph: seed generation is 0, and a result's generation
// is max(gen(u), gen(v)) + 1 for the first recipe (in BFS discovery
// order) whose both ingredients already have an assigned generation.
// Results unreachable from seeds are absent from the returned map.
func (g *Graph) Generations(seeds []int64) map[int64]int {
	gen := make(map[int64]int, len(g.Names))
	queue := make([]int64, 0, len(seeds))

	for _, s := range seeds {
		if _, ok := gen[s]; !ok {
			gen[s] = 0
			queue = append(queue, s)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, resultID := range g.Backward[cur] {
			if _, done := gen[resultID]; done {
				continue
			}
			for _, pair := range g.Forward[resultID] {
				gu, okU := gen[pair[0]]
				gv, okV := gen[pair[1]]
				if !okU || !okV {
					continue
				}
				candidate := gu + 1
				if gv > gu {
					candidate = gv + 1
				}
				gen[resultID] = candidate
				queue = append(queue, resultID)
				break
			}
		}
	}

	return gen
}

// Uses returns the result ids that id feeds into as an ingredient.
func (g *Graph) Uses(id int64) []int64 { return g.Backward[id] }

// RecipesFor returns the ingredient pairs known to produce id.
func (g *Graph) RecipesFor(id int64) []Pair { return g.Forward[id] }
