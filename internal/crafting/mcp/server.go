// Package mcp exposes the recipe graph as a Model Context Protocol tool
// server: JSON-RPC 2.0 requests in on stdin, one response object out on
// stdout per request, so an editor or agent integration can drive the
// graph queries in internal/crafting/engine without shelling out to
// cmd/craftctl.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gocraft/infinite-craft-oracle/internal/crafting/engine"
)

// defaultToolTimeout bounds a single tool call. bill_of_materials runs the
// A* planner with no deviation bound by default, which has no other
// backstop against a pathological target on a large graph.
const defaultToolTimeout = 30 * time.Second

// Server implements an MCP server over stdio.
type Server struct {
	engine      *engine.Engine
	logger      *slog.Logger
	toolTimeout time.Duration
}

// NewServer creates a new MCP server bound to eng.
func NewServer(eng *engine.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Server{
		engine:      eng,
		logger:      logger,
		toolTimeout: defaultToolTimeout,
	}
}

// Request is a JSON-RPC 2.0 request object.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC 2.0 response object.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id,omitempty"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Standard JSON-RPC error codes.
const (
	ErrCodeParse          = -32700
	ErrCodeInvalidReq     = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603
)

// Run reads newline-delimited JSON-RPC requests from stdin and writes one
// response object per request to stdout, until ctx is canceled or stdin is
// exhausted.
func (s *Server) Run(ctx context.Context) error {
	dec := json.NewDecoder(os.Stdin)
	enc := json.NewEncoder(os.Stdout)

	s.logger.Info("MCP server starting")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var req Request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err := enc.Encode(s.errorResponse(nil, ErrCodeParse, err.Error())); err != nil {
				s.logger.Error("failed to write response", "error", err)
			}
			return fmt.Errorf("mcp: decoding request: %w", err)
		}

		resp := s.handleRequest(ctx, req)
		if err := enc.Encode(resp); err != nil {
			s.logger.Error("failed to write response", "error", err)
		}
	}
}

// respond builds a successful JSON-RPC response.
func (s *Server) respond(id any, result any) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Result: result}
}

// errorResponse builds a JSON-RPC error response.
func (s *Server) errorResponse(id any, code int, message string) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Error: &Error{Code: code, Message: message}}
}

// handleRequest dispatches one decoded request to its method.
func (s *Server) handleRequest(ctx context.Context, req Request) *Response {
	s.logger.Debug("received request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		return s.respond(req.ID, s.handleInitialize())
	case "tools/list":
		return s.respond(req.ID, s.handleToolsList())
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		return s.errorResponse(req.ID, ErrCodeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method))
	}
}

// InitializeResult is the response to the initialize handshake.
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
	Capabilities    Capabilities `json:"capabilities"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Capabilities struct {
	Tools *ToolsCapability `json:"tools,omitempty"`
}

type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

func (s *Server) handleInitialize() InitializeResult {
	return InitializeResult{
		ProtocolVersion: "2024-11-05",
		ServerInfo: ServerInfo{
			Name:    "infinite-craft-oracle",
			Version: "0.1.0",
		},
		Capabilities: Capabilities{Tools: &ToolsCapability{}},
	}
}

// ToolsListResult is the response to tools/list.
type ToolsListResult struct {
	Tools []ToolDefinition `json:"tools"`
}

func (s *Server) handleToolsList() ToolsListResult {
	return ToolsListResult{Tools: GetToolDefinitions()}
}

// ToolCallParams are the parameters of a tools/call request.
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolCallResult is the response to a tools/call request.
type ToolCallResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

func (s *Server) handleToolsCall(ctx context.Context, req Request) *Response {
	var p ToolCallParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return s.errorResponse(req.ID, ErrCodeInvalidParams, fmt.Sprintf("invalid params: %v", err))
	}

	callCtx, cancel := context.WithTimeout(ctx, s.toolTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.callTool(callCtx, p.Name, p.Arguments)
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Warn("tool call failed", "name", p.Name, "duration", elapsed, "error", err)
		return s.errorResponse(req.ID, ErrCodeInternal, err.Error())
	}
	s.logger.Debug("tool call completed", "name", p.Name, "duration", elapsed)

	resultJSON, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return s.errorResponse(req.ID, ErrCodeInternal, fmt.Sprintf("marshaling result: %v", err))
	}

	return s.respond(req.ID, ToolCallResult{
		Content: []ContentBlock{{Type: "text", Text: string(resultJSON)}},
	})
}

// callTool dispatches to the handler for a named tool.
func (s *Server) callTool(ctx context.Context, name string, args json.RawMessage) (any, error) {
	switch name {
	case "craft_query":
		return s.toolCraftQuery(ctx, args)
	case "craft_path_to":
		return s.toolCraftPathTo(ctx, args)
	case "recipe_lookup":
		return s.toolRecipeLookup(ctx, args)
	case "component_uses":
		return s.toolComponentUses(ctx, args)
	case "bill_of_materials":
		return s.toolBillOfMaterials(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}
