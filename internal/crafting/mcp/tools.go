package mcp

import (
	"context"
	"encoding/json"

	"github.com/gocraft/infinite-craft-oracle/pkg/crafting"
)

// ToolDefinition describes an MCP tool.
type ToolDefinition struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	InputSchema JSONSchema `json:"inputSchema"`
}

// JSONSchema is a simplified JSON Schema representation.
type JSONSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes a schema property.
type Property struct {
	Type        string              `json:"type,omitempty"`
	Description string              `json:"description,omitempty"`
	Default     any                 `json:"default,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty"`
	Maximum     *float64            `json:"maximum,omitempty"`
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

// GetToolDefinitions returns all tool definitions.
func GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		craftQueryTool(),
		craftPathToTool(),
		recipeLookupTool(),
		componentUsesTool(),
		billOfMaterialsTool(),
	}
}

func craftQueryTool() ToolDefinition {
	minLimit := 1.0
	maxLimit := 100.0

	return ToolDefinition{
		Name:        "craft_query",
		Description: "Query every known recipe craftable from a given set of known elements.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"known": {
					Type:        "array",
					Description: "Element names the caller already holds",
					Items:       &Property{Type: "string"},
				},
				"limit": {
					Type:        "integer",
					Description: "Max recipes to return",
					Default:     20,
					Minimum:     &minLimit,
					Maximum:     &maxLimit,
				},
			},
			Required: []string{"known"},
		},
	}
}

func craftPathToTool() ToolDefinition {
	return ToolDefinition{
		Name:        "craft_path_to",
		Description: "List every known ingredient pair that produces a given target element.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"target": {
					Type:        "string",
					Description: "Element name to find recipes for",
				},
			},
			Required: []string{"target"},
		},
	}
}

func recipeLookupTool() ToolDefinition {
	return ToolDefinition{
		Name:        "recipe_lookup",
		Description: "Look up an element by exact name or substring search. Returns its recipes, what it's used in, and its generation.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"result": {
					Type:        "string",
					Description: "Exact element name to look up",
				},
				"search": {
					Type:        "string",
					Description: "Case-insensitive substring search (alternative to result)",
				},
			},
		},
	}
}

func componentUsesTool() ToolDefinition {
	return ToolDefinition{
		Name:        "component_uses",
		Description: "Find every known recipe that uses a given element as an ingredient.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"element": {
					Type:        "string",
					Description: "Element to look up uses for",
				},
			},
			Required: []string{"element"},
		},
	}
}

func billOfMaterialsTool() ToolDefinition {
	return ToolDefinition{
		Name:        "bill_of_materials",
		Description: "Compute the shortest craft sequence that produces a target element from the known seed set.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"target": {
					Type:        "string",
					Description: "Element to craft",
				},
				"deviation_bound": {
					Type:        "integer",
					Description: "Maximum number of off-path elements the plan may touch; 0 means no bound",
					Default:     0,
				},
			},
			Required: []string{"target"},
		},
	}
}

// Tool handlers

func (s *Server) toolCraftQuery(ctx context.Context, args json.RawMessage) (any, error) {
	var req crafting.CraftQueryRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, err
	}
	return s.engine.CraftQuery(ctx, req)
}

func (s *Server) toolCraftPathTo(ctx context.Context, args json.RawMessage) (any, error) {
	var req crafting.CraftPathToRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, err
	}
	return s.engine.CraftPathTo(ctx, req)
}

func (s *Server) toolRecipeLookup(ctx context.Context, args json.RawMessage) (any, error) {
	var req crafting.RecipeLookupRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, err
	}
	return s.engine.RecipeLookup(ctx, req)
}

func (s *Server) toolComponentUses(ctx context.Context, args json.RawMessage) (any, error) {
	var req crafting.ComponentUsesRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, err
	}
	return s.engine.ComponentUses(ctx, req)
}

func (s *Server) toolBillOfMaterials(ctx context.Context, args json.RawMessage) (any, error) {
	var req crafting.BillOfMaterialsRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, err
	}
	return s.engine.BillOfMaterials(ctx, req)
}
