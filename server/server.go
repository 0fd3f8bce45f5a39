package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	toolx "github.com/napatsw/trendscope/trends/tool"
)

type Config struct {
	Name       string `split_words:"true" default:"trendscope"`
	Version    string `split_words:"true" default:"0.1.0"`
	Transport  string `split_words:"true" default:"stdio"`
	SSEAddress string `envconfig:"SSE_ADDRESS" split_words:"true" default:":8943"`
}

// New exposes every registered tool over MCP. The dispatcher already wraps
// handler failures into error envelopes, so the MCP handler never returns a
// Go error for a tool failure.
func New(cfg Config, reg *toolx.Registry) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(
		cfg.Name,
		cfg.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)

	for _, def := range reg.Definitions() {
		s.AddTool(buildTool(def), dispatchHandler(reg, def.Name))
	}

	return s
}

// Serve blocks on the configured transport.
func Serve(cfg Config, s *mcpserver.MCPServer) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Transport)) {
	case "", "stdio":
		return mcpserver.ServeStdio(s)
	case "sse":
		log.Info().Str("address", cfg.SSEAddress).Msg("serving MCP over SSE")
		return mcpserver.NewSSEServer(s).Start(cfg.SSEAddress)
	default:
		return fmt.Errorf("unsupported transport %q (expected stdio or sse)", cfg.Transport)
	}
}

func buildTool(def toolx.Definition) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(def.Description)}
	for _, p := range def.Params {
		var propOpts []mcp.PropertyOption
		if p.Description != "" {
			propOpts = append(propOpts, mcp.Description(p.Description))
		}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}

		switch p.Type {
		case toolx.ParamNumber:
			opts = append(opts, mcp.WithNumber(p.Name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		}
	}
	return mcp.NewTool(def.Name, opts...)
}

func dispatchHandler(reg *toolx.Registry, name string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := reg.Dispatch(ctx, name, request.GetArguments())
		if res.IsError {
			return mcp.NewToolResultError(res.Text()), nil
		}
		return mcp.NewToolResultText(res.Text()), nil
	}
}
