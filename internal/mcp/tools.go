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

// In this file: MCP tool definitions and handler implementations.

import (
	"context"
	"encoding/json"
	"math"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"github.com/rusq/redashmcp/internal/redash"
)

// Tool names.
const (
	ToolExecuteQueryAndWait = "execute_query_and_wait"
	ToolListDataSources     = "list_data_sources"
	ToolGetDataSource       = "get_data_source"
	ToolGetQuery            = "get_query"
	ToolSearchQueries       = "search_queries"
	ToolGetQueryResult      = "get_query_result"
	ToolGetSavedQueryResult = "get_saved_query_result"
)

type toolDef struct {
	mcplib.Tool
	op operation
}

// toolset returns all tools that this server exposes, in the listing order.
func (s *Server) toolset() []toolDef {
	return []toolDef{
		s.toolExecuteQueryAndWait(),
		s.toolListDataSources(),
		s.toolGetDataSource(),
		s.toolGetQuery(),
		s.toolSearchQueries(),
		s.toolGetQueryResult(),
		s.toolGetSavedQueryResult(),
	}
}

// maxInteger is the upper bound of the integer arguments, so that they fit the
// int on every platform.
const maxInteger = math.MaxInt32

// integer turns the number property into the integer one.
func integer() mcplib.PropertyOption {
	return func(schema map[string]any) {
		schema["type"] = "integer"
	}
}

// idProperty is the integer identifier property.
func idProperty(name, description string, required bool) mcplib.ToolOption {
	opts := []mcplib.PropertyOption{integer(), mcplib.Min(1), mcplib.Max(maxInteger), mcplib.Description(description)}
	if required {
		opts = append(opts, mcplib.Required())
	}
	return mcplib.WithNumber(name, opts...)
}

// readOnly are the options shared by the lookup tools.
func readOnly() []mcplib.ToolOption {
	return []mcplib.ToolOption{
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithOpenWorldHintAnnotation(true),
		mcplib.WithSchemaAdditionalProperties(false),
	}
}

// ─── execute_query_and_wait ───────────────────────────────────────────────────

func (s *Server) toolExecuteQueryAndWait() toolDef {
	tool := mcplib.NewTool(ToolExecuteQueryAndWait,
		mcplib.WithDescription("Execute a SQL query and wait for the results"),
		idProperty("data_source_id", "ID of the data source to run the query on. If omitted, the default data source is used.", false),
		mcplib.WithString("query",
			mcplib.Description("The SQL query text."),
			mcplib.Required(),
		),
		mcplib.WithNumber("max_age",
			integer(),
			mcplib.Min(0),
			mcplib.Max(maxInteger),
			mcplib.Description("Maximum age of a cached result in seconds. 0 forces the query to run."),
		),
		mcplib.WithReadOnlyHintAnnotation(false),
		mcplib.WithDestructiveHintAnnotation(false),
		mcplib.WithOpenWorldHintAnnotation(true),
		mcplib.WithSchemaAdditionalProperties(false),
	)
	return toolDef{Tool: tool, op: s.execQuery}
}

func (s *Server) execQuery(ctx context.Context, args map[string]any) (any, error) {
	p := redash.QueryParams{
		Query: stringArg(args, "query"),
	}
	p.DataSourceID, _ = intArg(args, "data_source_id")
	if maxAge, ok := intArg(args, "max_age"); ok {
		p.MaxAge = &maxAge
	}
	return s.api.ExecuteQueryAndWait(ctx, p)
}

// ─── list_data_sources ────────────────────────────────────────────────────────

func (s *Server) toolListDataSources() toolDef {
	tool := mcplib.NewTool(ToolListDataSources,
		append([]mcplib.ToolOption{
			mcplib.WithDescription("List all available data sources"),
		}, readOnly()...)...,
	)
	return toolDef{Tool: tool, op: func(ctx context.Context, _ map[string]any) (any, error) {
		return s.api.ListDataSources(ctx)
	}}
}

// ─── get_data_source ──────────────────────────────────────────────────────────

func (s *Server) toolGetDataSource() toolDef {
	tool := mcplib.NewTool(ToolGetDataSource,
		append([]mcplib.ToolOption{
			mcplib.WithDescription("Get details about a specific data source"),
			idProperty("data_source_id", "ID of the data source.", true),
		}, readOnly()...)...,
	)
	return toolDef{Tool: tool, op: func(ctx context.Context, args map[string]any) (any, error) {
		id, _ := intArg(args, "data_source_id")
		return s.api.GetDataSource(ctx, id)
	}}
}

// ─── get_query ────────────────────────────────────────────────────────────────

func (s *Server) toolGetQuery() toolDef {
	tool := mcplib.NewTool(ToolGetQuery,
		append([]mcplib.ToolOption{
			mcplib.WithDescription("Get details of a saved query by its ID, including the SQL text"),
			idProperty("query_id", "ID of the saved query.", true),
		}, readOnly()...)...,
	)
	return toolDef{Tool: tool, op: func(ctx context.Context, args map[string]any) (any, error) {
		id, _ := intArg(args, "query_id")
		return s.api.GetQuery(ctx, id)
	}}
}

// ─── search_queries ───────────────────────────────────────────────────────────

func (s *Server) toolSearchQueries() toolDef {
	tool := mcplib.NewTool(ToolSearchQueries,
		append([]mcplib.ToolOption{
			mcplib.WithDescription("Search saved queries by keyword"),
			mcplib.WithString("q",
				mcplib.Description("Search keyword, matched against the query names and descriptions."),
				mcplib.Required(),
			),
			idProperty("page", "Page number, starting at 1.", false),
			idProperty("page_size", "Number of results per page.", false),
		}, readOnly()...)...,
	)
	return toolDef{Tool: tool, op: s.searchQueries}
}

func (s *Server) searchQueries(ctx context.Context, args map[string]any) (any, error) {
	page, _ := intArg(args, "page")
	pageSize, _ := intArg(args, "page_size")
	return s.api.SearchQueries(ctx, stringArg(args, "q"), page, pageSize)
}

// ─── get_query_result ─────────────────────────────────────────────────────────

func (s *Server) toolGetQueryResult() toolDef {
	tool := mcplib.NewTool(ToolGetQueryResult,
		append([]mcplib.ToolOption{
			mcplib.WithDescription("Get an existing query result by its result ID without re-executing the query"),
			idProperty("query_result_id", "ID of the query result.", true),
		}, readOnly()...)...,
	)
	return toolDef{Tool: tool, op: func(ctx context.Context, args map[string]any) (any, error) {
		id, _ := intArg(args, "query_result_id")
		return s.api.GetQueryResult(ctx, id)
	}}
}

// ─── get_saved_query_result ───────────────────────────────────────────────────

func (s *Server) toolGetSavedQueryResult() toolDef {
	tool := mcplib.NewTool(ToolGetSavedQueryResult,
		append([]mcplib.ToolOption{
			mcplib.WithDescription("Get the latest cached result of a saved query by its query ID"),
			idProperty("query_id", "ID of the saved query.", true),
		}, readOnly()...)...,
	)
	return toolDef{Tool: tool, op: func(ctx context.Context, args map[string]any) (any, error) {
		id, _ := intArg(args, "query_id")
		return s.api.GetSavedQueryResult(ctx, id)
	}}
}

// ─── argument helpers ─────────────────────────────────────────────────────────

// stringArg extracts a named string argument.  Returns "" if the argument is
// absent or not a string.
func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

// intArg extracts a named int argument.  The MCP protocol serialises numbers
// as float64, so we convert accordingly.
func intArg(args map[string]any, name string) (int, bool) {
	switch n := args[name].(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	}
	return 0, false
}
