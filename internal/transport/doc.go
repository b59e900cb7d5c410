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

// Package transport implements the connection oriented MCP transports: the
// Streamable HTTP transport and the Server-Sent Events transport.
//
// Each client session gets its own MCP server, created by the Factory when
// the session is initialised.  Sessions are kept in a Registry, owned by the
// handler, and removed when the client terminates the session, or when the
// SSE stream is closed.  Requests that carry an unknown session ID are
// rejected with the "Session not found" JSON-RPC error.
package transport
