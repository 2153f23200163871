// Package mcpserver exposes the placement engine as Model Context Protocol
// tools so agents can preview and apply edits to timeline documents.
//
// Tool arguments carry timelines and drag scripts as JSON strings in the
// same document format the CLI reads; results are JSON text. Failures are
// reported as tool errors, not protocol errors, so the calling agent can
// read the message and retry.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/matzehuels/cliptower/pkg/buildinfo"
	"github.com/matzehuels/cliptower/pkg/editor"
	"github.com/matzehuels/cliptower/pkg/errors"
	"github.com/matzehuels/cliptower/pkg/store"
)

// Name is the server name announced to clients.
const Name = "cliptower"

// Server wraps an MCP server whose tools run against Editor and, when set,
// Store.
type Server struct {
	Editor *editor.Editor
	Store  store.Store
	Logger *log.Logger

	mcp *server.MCPServer
}

// New registers every tool. Document tools are only registered when st is
// non-nil.
func New(ed *editor.Editor, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{Editor: ed, Store: st, Logger: logger}
	s.mcp = server.NewMCPServer(Name, buildinfo.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.registerEditTools()
	if st != nil {
		s.registerDocumentTools()
	}
	return s
}

// MCP returns the underlying server.
func (s *Server) MCP() *server.MCPServer { return s.mcp }

// ServeStdio serves over stdin and stdout until ctx is cancelled or stdin
// closes.
func (s *Server) ServeStdio(ctx context.Context) error {
	s.Logger.Info("mcp server ready", "transport", "stdio")
	return server.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
}

func (s *Server) add(tool mcp.Tool, h server.ToolHandlerFunc) {
	s.mcp.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := h(ctx, req)
		if err != nil {
			s.Logger.Debug("tool failed", "tool", tool.Name, "err", err)
			return toolError(err), nil
		}
		return res, nil
	})
}

func toolError(err error) *mcp.CallToolResult {
	if code := errors.GetCode(err); code != "" {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", code, errors.UserMessage(err)))
	}
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode result")
	}
	return mcp.NewToolResultText(string(data)), nil
}
