// Package mcp exposes the icon façade over the Model Context Protocol.
//
// The server registers two tools, create_icon_prompt and save_icon, backed
// by the official MCP SDK. Handlers follow the net/http.Handler idea:
// direct inline handling, no conversion layer. Agent-correctable failures
// (bad input, missing files, capability gaps) come back as IsError tool
// results carrying the uniform validation_failed payload; only genuine
// system errors propagate as protocol errors.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/iconforge/iconforge/internal/icon"
	"github.com/iconforge/iconforge/internal/log"
)

// Server wraps the MCP SDK server and the icon façade.
type Server struct {
	mcpServer *mcp.Server
	service   *icon.Service
	logger    log.Logger
}

// Config holds MCP server configuration.
type Config struct {
	Name    string
	Version string
	Service *icon.Service
	Logger  log.Logger
}

// NewServer creates an MCP server with both tools registered.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("server name is required")
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("server version is required")
	}
	if cfg.Service == nil {
		return nil, fmt.Errorf("icon service is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNop()
	}

	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		}, nil),
		service: cfg.Service,
		logger:  cfg.Logger,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("registering tools: %w", err)
	}
	return s, nil
}

// Run starts the server on the given transport. Blocking.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcpServer.Run(ctx, transport)
}

func (s *Server) registerTools() error {
	ops := map[string]icon.Operation{}
	for _, op := range icon.Operations() {
		ops[op.Name] = op
	}

	createSchema, err := jsonschema.For[icon.CreateRequest](nil)
	if err != nil {
		return fmt.Errorf("schema for create_icon_prompt: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_icon_prompt",
		Description: ops["create_icon_prompt"].Description,
		InputSchema: createSchema,
	}, s.CreateIconPrompt)

	saveSchema, err := jsonschema.For[icon.SaveRequest](nil)
	if err != nil {
		return fmt.Errorf("schema for save_icon: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_icon",
		Description: ops["save_icon"].Description,
		InputSchema: saveSchema,
	}, s.SaveIcon)

	return nil
}

// CreateIconPrompt handles the create_icon_prompt tool call.
func (s *Server) CreateIconPrompt(ctx context.Context, req *mcp.CallToolRequest, in icon.CreateRequest) (*mcp.CallToolResult, any, error) {
	result, err := s.service.CreatePrompt(in)
	if err != nil {
		return s.failureResult(err)
	}
	return jsonResult(result)
}

// SaveIcon handles the save_icon tool call.
func (s *Server) SaveIcon(ctx context.Context, req *mcp.CallToolRequest, in icon.SaveRequest) (*mcp.CallToolResult, any, error) {
	result, err := s.service.SaveIcon(in)
	if err != nil {
		return s.failureResult(err)
	}
	return jsonResult(result)
}

// failureResult renders a façade error as an IsError tool result. Anything
// that is not a *icon.ValidationError is a bug and becomes a protocol error.
func (s *Server) failureResult(err error) (*mcp.CallToolResult, any, error) {
	var verr *icon.ValidationError
	if !errors.As(err, &verr) {
		return nil, nil, fmt.Errorf("system error: %w", err)
	}

	s.logger.Debug("tool call rejected", "kind", verr.Kind, "message", verr.Message)

	payload, merr := json.Marshal(verr.Failure())
	if merr != nil {
		return nil, nil, fmt.Errorf("encoding failure payload: %w", merr)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
		IsError: true,
	}, nil, nil
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
	}, v, nil
}
