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
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/server"
)

// Factory creates a new MCP server for the session.  Each session gets its own
// server instance.
type Factory func() *server.MCPServer

const (
	// DefMaxBodySize is the default limit for the request body.
	DefMaxBodySize = 4 << 20
	// DefHeartbeat is the default interval between keep-alive pings on the
	// open streams.
	DefHeartbeat = 30 * time.Second
)

type options struct {
	logger    *slog.Logger
	maxBody   int64
	heartbeat time.Duration
}

// Option is the transport option.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(lg *slog.Logger) Option {
	return func(o *options) {
		if lg != nil {
			o.logger = lg
		}
	}
}

// WithMaxBodySize sets the request body size limit in bytes.  Zero or
// negative value leaves the default.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBody = n
		}
	}
}

// WithHeartbeat sets the keep-alive interval for the open streams.  Zero
// disables keep-alives.
func WithHeartbeat(d time.Duration) Option {
	return func(o *options) {
		o.heartbeat = max(d, 0)
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:    slog.Default(),
		maxBody:   DefMaxBodySize,
		heartbeat: DefHeartbeat,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// mcpLogger adapts slog.Logger to the logger interface of the mcp-go
// transports.
type mcpLogger struct {
	lg *slog.Logger
}

func (l mcpLogger) Infof(format string, v ...any) {
	l.lg.Debug(fmt.Sprintf(format, v...))
}

func (l mcpLogger) Errorf(format string, v ...any) {
	l.lg.Error(fmt.Sprintf(format, v...))
}
