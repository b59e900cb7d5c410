// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mcp

// In this file: MCP server construction and the tool dispatcher.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/trace"
	"strings"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/rusq/redashmcp/internal/redash"
)

const (
	defServerName    = "redash-mcp-server"
	defServerVersion = "1.0.0"
)

// Transport selects how the MCP server communicates with its client.
type Transport string

const (
	// TransportStdio uses stdin/stdout for communication (default, suitable
	// for local agent integrations such as Claude Desktop).
	TransportStdio Transport = "stdio"
	// TransportSSE uses the Server-Sent Events transport.
	TransportSSE Transport = "sse"
	// TransportHTTP uses Streamable HTTP transport (suitable for remote
	// agents or when multiple concurrent clients are needed).
	TransportHTTP Transport = "http"
)

// String implements flag.Value.
func (t *Transport) String() string {
	return string(*t)
}

// Set implements flag.Value.
func (t *Transport) Set(s string) error {
	switch v := Transport(strings.ToLower(s)); v {
	case TransportStdio, TransportSSE, TransportHTTP:
		*t = v
		return nil
	case "streamable-http", "streamable":
		*t = TransportHTTP
		return nil
	}
	return fmt.Errorf("unknown transport %q, must be one of: stdio, sse, http", s)
}

// operation is the backend operation behind the tool.  args are validated
// against the tool schema before the call.
type operation func(ctx context.Context, args map[string]any) (any, error)

// entry is the registered tool.
type entry struct {
	tool   mcplib.Tool
	op     operation
	schema *jsonschema.Schema
}

// Server wraps an MCP server and the tool table.
type Server struct {
	mcp    *mcpsrv.MCPServer
	api    redash.API
	logger *slog.Logger

	name          string
	version       string
	defDataSource int

	tools []mcplib.Tool // in registration order
	table map[string]*entry
}

// Option is the Server option.
type Option func(*Server)

// WithLogger sets the logger.  A nil logger falls back to slog.Default().
func WithLogger(lg *slog.Logger) Option {
	return func(s *Server) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithName sets the server name reported to the client.
func WithName(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.name = name
		}
	}
}

// WithVersion sets the server version reported to the client.
func WithVersion(version string) Option {
	return func(s *Server) {
		if version != "" {
			s.version = version
		}
	}
}

// WithDefaultDataSource tells the server the default data source, it is
// mentioned in the instructions to the agent.
func WithDefaultDataSource(id int) Option {
	return func(s *Server) {
		s.defDataSource = id
	}
}

// New creates a new MCP server backed by the given API.  The server is
// populated with all tools but does not start listening until one of the
// Serve* methods is called.  Each call returns an independent server, with
// its own tool table.
func New(api redash.API, opts ...Option) *Server {
	s := &Server{
		api:     api,
		logger:  slog.Default(),
		name:    defServerName,
		version: defServerVersion,
		table:   make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = mcpsrv.NewMCPServer(
		s.name,
		s.version,
		mcpsrv.WithInstructions(instructions(s.defDataSource)),
		mcpsrv.WithToolCapabilities(false),
		mcpsrv.WithToolHandlerMiddleware(s.logCalls),
		mcpsrv.WithRecovery(),
	)

	for _, t := range s.toolset() {
		s.register(t.Tool, t.op)
	}
	return s
}

// register adds the tool to the tool table and to the MCP server.  It panics
// if the tool schema does not compile, as the tools are static.
func (s *Server) register(tool mcplib.Tool, op operation) {
	sch, err := compileSchema(tool)
	if err != nil {
		panic(fmt.Sprintf("tool %s: %v", tool.Name, err))
	}
	s.table[tool.Name] = &entry{tool: tool, op: op, schema: sch}
	s.tools = append(s.tools, tool)
	s.mcp.AddTool(tool, s.handler(tool.Name))
}

// handler returns the MCP handler for the named tool.  Failures are reported
// to the client as the tool result with IsError set.
func (s *Server) handler(name string) mcpsrv.ToolHandlerFunc {
	return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		res, err := s.CallTool(ctx, name, req.GetArguments())
		if err != nil {
			return resultErr(err), nil
		}
		return res, nil
	}
}

// logCalls is the tool handler middleware that logs the tool calls.
func (s *Server) logCalls(next mcpsrv.ToolHandlerFunc) mcpsrv.ToolHandlerFunc {
	return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		start := time.Now()
		res, err := next(ctx, req)
		lg := s.logger.With("tool", req.Params.Name, "took", time.Since(start))
		switch {
		case err != nil:
			lg.ErrorContext(ctx, "mcp: tool call failed", "error", err)
		case res != nil && res.IsError:
			lg.WarnContext(ctx, "mcp: tool returned error")
		default:
			lg.DebugContext(ctx, "mcp: tool call")
		}
		return res, err
	}
}

// instructions returns the server instructions that describe the server to
// the connecting agent.
func instructions(defDataSource int) string {
	ds := "No default data source is configured: pass data_source_id to execute_query_and_wait (use list_data_sources to find one)."
	if defDataSource > 0 {
		ds = fmt.Sprintf("The default data source ID is %d, it is used by execute_query_and_wait when data_source_id is omitted.", defDataSource)
	}
	return `You are connected to a Redash MCP server.

Available tools allow you to:
- Execute SQL queries against a Redash data source and wait for the results
- List data sources and get the details of a data source
- Get and search saved queries
- Get existing query results, and the latest cached results of saved queries

` + ds + `
All tools except execute_query_and_wait are read-only.
`
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpsrv.MCPServer {
	return s.mcp
}

// ListTools returns the tool descriptors in a fixed order.
func (s *Server) ListTools() []mcplib.Tool {
	return s.tools
}

// CallTool looks up the tool by name, validates args against the tool input
// schema and calls the backend operation.  On success, the result is
// returned as pretty printed JSON.
//
// Errors:
//   - ErrUnknownTool if there is no such tool;
//   - *InputError if the arguments do not match the schema;
//   - *ToolError, wrapping the *redash.Error, with the formatted diagnostic;
//   - any other error from the operation, unchanged.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (*mcplib.CallToolResult, error) {
	e, ok := s.table[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if err := validateArgs(e.schema, name, args); err != nil {
		return nil, err
	}

	ctx, task := trace.NewTask(ctx, "mcp.CallTool")
	defer task.End()
	trace.Log(ctx, "tool", name)

	v, err := e.op(ctx, args)
	if err != nil {
		if rErr, ok := redash.AsError(err); ok {
			return nil, &ToolError{Tool: name, Message: redash.Format(rErr), Err: err}
		}
		return nil, err
	}
	return resultJSON(v)
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
// This is the standard transport used by local agent integrations.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve runs the MCP server on the given reader and writer until ctx is
// cancelled or in is exhausted.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	srv.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, in, out); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// resultErr is a helper that wraps an error in a CallToolResult with IsError=true.
func resultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

// resultJSON is a helper that serialises v to indented JSON and returns a
// CallToolResult with a single text content.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialise result: %w", err)
	}
	return mcplib.NewToolResultText(string(b)), nil
}
