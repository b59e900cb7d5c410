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

// Package mcp implements a Model Context Protocol (MCP) server for Redash.
// It exposes the Redash API through MCP tools that AI agents can call to run
// SQL queries, and to inspect data sources, saved queries and query results.
//
// Every tool call goes through the same pipeline: lookup by name, validation
// of the arguments against the tool input schema, the backend call, and the
// conversion of the result to pretty printed JSON.  Backend failures are
// formatted into a single diagnostic string.
//
// Transport: the stdio transport is implemented here; the connection
// oriented transports (SSE and Streamable HTTP) live in the transport package
// and create one Server per client session.
package mcp
