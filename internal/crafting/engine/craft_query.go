package engine

import (
	"context"
	"sort"

	"github.com/gocraft/infinite-craft-oracle/pkg/crafting"
)

// CraftQuery executes the craft_query tool: every known recipe whose
// both ingredients are present in req.Known.
func (e *Engine) CraftQuery(ctx context.Context, req crafting.CraftQueryRequest) (*crafting.CraftQueryResponse, error) {
	known := make(map[int64]bool, len(req.Known))
	for _, name := range req.Known {
		if id, ok := e.graph.ByName[name]; ok {
			known[id] = true
		}
	}

	var craftable []crafting.RecipeInfo
	for resultID, pairs := range e.graph.Forward {
		for _, pair := range pairs {
			if known[pair[0]] && known[pair[1]] {
				craftable = append(craftable, e.recipeInfoFor(resultID, pair))
			}
		}
	}

	sort.Slice(craftable, func(i, j int) bool { return craftable[i].Result < craftable[j].Result })

	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	if len(craftable) > limit {
		craftable = craftable[:limit]
	}

	return &crafting.CraftQueryResponse{
		Craftable:  craftable,
		TotalKnown: len(known),
	}, nil
}
