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

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"
)

// SSE transport endpoints.
const (
	EndpointSSE      = "/sse"
	EndpointMessages = "/messages"
)

// SSE is the legacy Server-Sent Events transport handler.  The client opens
// the event stream with GET /sse, receives the "endpoint" event with the
// message URL, and posts JSON-RPC messages to it.  Responses are delivered
// on the event stream.  The session lives as long as the stream.
type SSE struct {
	newServer Factory
	sessions  *Registry[*server.SSEServer]
	opts      options
}

// NewSSE creates a new SSE transport handler.
func NewSSE(f Factory, opts ...Option) *SSE {
	return &SSE{
		newServer: f,
		sessions:  NewRegistry[*server.SSEServer](),
		opts:      newOptions(opts),
	}
}

// Mount registers the handler endpoints on the router.
func (h *SSE) Mount(r chi.Router) {
	r.Get(EndpointSSE, h.handleStream)
	r.Post(EndpointMessages, h.handleMessage)
}

// Sessions returns the number of open streams.
func (h *SSE) Sessions() int {
	return h.sessions.Len()
}

func (h *SSE) handleStream(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	opts := []server.SSEOption{
		server.WithSessionIDGenerator(func(context.Context, *http.Request) (string, error) {
			return id, nil
		}),
		server.WithMessageEndpoint(EndpointMessages),
		server.WithUseFullURLForMessageEndpoint(false),
	}
	if h.opts.heartbeat > 0 {
		opts = append(opts, server.WithKeepAliveInterval(h.opts.heartbeat))
	}
	srv := server.NewSSEServer(h.newServer(), opts...)

	h.sessions.Add(id, srv)
	defer h.sessions.Remove(id)

	lg := h.opts.logger.With("transport", "sse", "session_id", id)
	lg.InfoContext(r.Context(), "session started")
	srv.SSEHandler().ServeHTTP(w, r) // blocks until the client disconnects
	lg.InfoContext(r.Context(), "session closed")
}

func (h *SSE) handleMessage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("sessionId")
	if id == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, msgMissingSessionID)
		return
	}
	srv, ok := h.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, CodeSessionNotFound, msgSessionNotFound)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.maxBody)
	srv.MessageHandler().ServeHTTP(w, r)
}
