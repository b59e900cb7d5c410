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

package transport

// In this file: JSON-RPC error envelopes.

import (
	"encoding/json"
	"net/http"

	mcplib "github.com/mark3labs/mcp-go/mcp"
)

// JSON-RPC error codes used by the transports.
const (
	CodeParseError       = mcplib.PARSE_ERROR     // -32700
	CodeInvalidRequest   = mcplib.INVALID_REQUEST // -32600
	CodeInternalError    = mcplib.INTERNAL_ERROR  // -32603
	CodeMethodNotAllowed = -32000
	CodeSessionNotFound  = -32001
)

const (
	msgParseError       = "Parse error: Invalid JSON"
	msgBadRequest       = "Bad Request: Missing session ID or invalid initialize request"
	msgSessionNotFound  = "Session not found"
	msgInternalError    = "Internal error"
	msgMethodNotAllowed = "Method not allowed"
	msgMissingSessionID = "Bad Request: Missing sessionId parameter"
	msgBodyTooLarge     = "Request body too large"
)

// rpcError is the JSON-RPC error object.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// envelope is the JSON-RPC error response.  ID is always null, as the errors
// are produced before the request is parsed.
type envelope struct {
	JSONRPC string   `json:"jsonrpc"`
	Error   rpcError `json:"error"`
	ID      any      `json:"id"`
}

// writeError writes the JSON-RPC error envelope with the HTTP status.
func writeError(w http.ResponseWriter, status int, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		JSONRPC: mcplib.JSONRPC_VERSION,
		Error:   rpcError{Code: code, Message: message},
		ID:      nil,
	})
}
