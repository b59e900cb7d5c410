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
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// EndpointMCP is the Streamable HTTP endpoint.
const EndpointMCP = "/mcp"

var errUnknownSession = errors.New("unknown session")

// StreamableHTTP is the Streamable HTTP transport handler.  It serves POST,
// GET and DELETE requests on a single endpoint; the session is identified by
// the Mcp-Session-Id header, and is created by the initialize request.
type StreamableHTTP struct {
	newServer Factory
	sessions  *Registry[*streamSession]
	opts      options
}

// streamSession is the session of the Streamable HTTP transport.  It also
// acts as the mcp-go session ID manager, bound to a single session ID.
type streamSession struct {
	id          string
	h           *server.StreamableHTTPServer
	terminated  atomic.Bool
	onTerminate func(id string)
}

func (s *streamSession) Generate() string {
	return s.id
}

func (s *streamSession) Validate(id string) (isTerminated bool, err error) {
	if id != s.id {
		return false, errUnknownSession
	}
	return s.terminated.Load(), nil
}

func (s *streamSession) Terminate(id string) (isNotAllowed bool, err error) {
	if id != s.id {
		return false, errUnknownSession
	}
	if s.terminated.CompareAndSwap(false, true) && s.onTerminate != nil {
		s.onTerminate(id)
	}
	return false, nil
}

// NewStreamableHTTP creates a new Streamable HTTP transport handler.
func NewStreamableHTTP(f Factory, opts ...Option) *StreamableHTTP {
	return &StreamableHTTP{
		newServer: f,
		sessions:  NewRegistry[*streamSession](),
		opts:      newOptions(opts),
	}
}

// Mount registers the handler on the router.
func (h *StreamableHTTP) Mount(r chi.Router) {
	r.Handle(EndpointMCP, h)
}

// Sessions returns the number of live sessions.
func (h *StreamableHTTP) Sessions() int {
	return h.sessions.Len()
}

// Close terminates all sessions.
func (h *StreamableHTTP) Close() error {
	for _, s := range h.sessions.Drain() {
		s.terminated.Store(true)
	}
	return nil
}

func (h *StreamableHTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet, http.MethodDelete:
		h.handleSession(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, msgMethodNotAllowed)
	}
}

func (h *StreamableHTTP) handlePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.opts.maxBody))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeInvalidRequest, msgBodyTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, CodeParseError, msgParseError)
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	if id := r.Header.Get(server.HeaderKeySessionID); id != "" {
		s, ok := h.sessions.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, CodeSessionNotFound, msgSessionNotFound)
			return
		}
		s.h.ServeHTTP(w, r)
		return
	}

	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, CodeParseError, msgParseError)
		return
	}
	if !isInitialize(body) {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, msgBadRequest)
		return
	}
	h.initialize(w, r)
}

// initialize creates the new session and hands it the initialize request.
// The session is discarded if the request fails.
func (h *StreamableHTTP) initialize(w http.ResponseWriter, r *http.Request) {
	s := &streamSession{
		id:          uuid.NewString(),
		onTerminate: h.remove,
	}
	opts := []server.StreamableHTTPOption{
		server.WithSessionIdManager(s),
		server.WithEndpointPath(EndpointMCP),
		server.WithLogger(mcpLogger{h.opts.logger}),
	}
	if h.opts.heartbeat > 0 {
		opts = append(opts, server.WithHeartbeatInterval(h.opts.heartbeat))
	}
	s.h = server.NewStreamableHTTPServer(h.newServer(), opts...)
	h.sessions.Add(s.id, s)

	ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
	s.h.ServeHTTP(ww, r)
	if ww.Status() >= http.StatusBadRequest {
		h.sessions.Remove(s.id)
		h.opts.logger.DebugContext(r.Context(), "session initialisation failed", "session_id", s.id, "status", ww.Status())
		return
	}
	h.opts.logger.InfoContext(r.Context(), "session started", "transport", "http", "session_id", s.id)
}

func (h *StreamableHTTP) handleSession(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(server.HeaderKeySessionID)
	if id == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, msgBadRequest)
		return
	}
	s, ok := h.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, CodeSessionNotFound, msgSessionNotFound)
		return
	}
	s.h.ServeHTTP(w, r)
}

func (h *StreamableHTTP) remove(id string) {
	if _, ok := h.sessions.Remove(id); ok {
		h.opts.logger.Info("session closed", "transport", "http", "session_id", id)
	}
}

// isInitialize reports whether the message is the initialize request.
func isInitialize(body []byte) bool {
	var msg struct {
		Method string `json:"method"`
	}
	if err := json.Unmarshal(body, &msg); err != nil {
		return false
	}
	return msg.Method == string(mcplib.MethodInitialize)
}
