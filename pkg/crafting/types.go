// Package crafting contains the request/response types for the MCP
// recipe-graph query server.
package crafting

// ============================================
// SHARED TYPES
// ============================================

// RecipeInfo describes one known combination: two ingredients producing
// a result.
type RecipeInfo struct {
	Ingredient1 string `json:"ingredient1"`
	Ingredient2 string `json:"ingredient2"`
	Result      string `json:"result"`
}

// ============================================
// TOOL REQUEST/RESPONSE TYPES
// ============================================

// CraftQueryRequest is the input for the craft_query tool.
type CraftQueryRequest struct {
	Known []string `json:"known"`
	Limit int      `json:"limit,omitempty"`
}

// CraftQueryResponse is the output for the craft_query tool: every known
// recipe craftable right now from the given elements.
type CraftQueryResponse struct {
	Craftable  []RecipeInfo `json:"craftable"`
	TotalKnown int          `json:"total_known_elements"`
}

// CraftPathToRequest is the input for the craft_path_to tool.
type CraftPathToRequest struct {
	Target string `json:"target"`
}

// CraftPathToResponse is the output for the craft_path_to tool: every
// known ingredient pair that produces Target, one level deep.
type CraftPathToResponse struct {
	Target  string       `json:"target"`
	Recipes []RecipeInfo `json:"recipes"`
	Known   bool         `json:"known"`
}

// RecipeLookupRequest is the input for the recipe_lookup tool.
type RecipeLookupRequest struct {
	Result string `json:"result,omitempty"`
	Search string `json:"search,omitempty"`
}

// RecipeLookupResponse is the output for the recipe_lookup tool.
type RecipeLookupResponse struct {
	Matches []RecipeLookupMatch `json:"matches"`
}

// RecipeLookupMatch is one element matched by a recipe_lookup query,
// along with what it can be combined into.
type RecipeLookupMatch struct {
	Element    string       `json:"element"`
	Recipes    []RecipeInfo `json:"recipes"`
	UsedIn     []string     `json:"used_in"`
	Generation int          `json:"generation,omitempty"`
}

// ComponentUsesRequest is the input for the component_uses tool.
type ComponentUsesRequest struct {
	Element string `json:"element"`
}

// ComponentUsesResponse is the output for the component_uses tool.
type ComponentUsesResponse struct {
	Element   string       `json:"element"`
	UsedIn    []RecipeInfo `json:"used_in"`
	TotalUses int          `json:"total_uses"`
}

// BillOfMaterialsRequest is the input for the bill_of_materials tool.
type BillOfMaterialsRequest struct {
	Target         string `json:"target"`
	DeviationBound int    `json:"deviation_bound,omitempty"`
}

// BillOfMaterialsResponse is the output for the bill_of_materials tool:
// the full, topologically-ordered craft sequence needed to reach Target
// from the free element set.
type BillOfMaterialsResponse struct {
	Target     string       `json:"target"`
	CraftSteps []RecipeInfo `json:"craft_steps"`
	CraftCount int          `json:"craft_count"`
}
