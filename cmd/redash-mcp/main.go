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

// Command redash-mcp is the Model Context Protocol server for Redash.  It
// exposes the Redash query execution and lookup operations as MCP tools over
// stdio, SSE or Streamable HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	mcpsrv "github.com/mark3labs/mcp-go/server"
	"github.com/rusq/osenv/v2"
	"golang.org/x/time/rate"

	"github.com/rusq/redashmcp/internal/config"
	"github.com/rusq/redashmcp/internal/mcp"
	"github.com/rusq/redashmcp/internal/redash"
	"github.com/rusq/redashmcp/internal/transport"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// exit statuses
const (
	sSuccess           = 0
	sApplicationError  = 1
	sInvalidParameters = 2
	sConfigError       = 3
)

var secrets = []string{".env", ".env.txt", "secrets.txt"}

type params struct {
	transport    mcp.Transport
	listenAddr   string
	logFile      string
	jsonLog      bool
	verbose      bool
	traceFile    string
	printVersion bool
}

func main() {
	loadSecrets(secrets)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run runs the program and returns the exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	p, err := parseCmdLine(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return sSuccess
		}
		return sInvalidParameters
	}
	if p.printVersion {
		fmt.Fprintf(stdout, "redash-mcp %s (commit: %s) built on: %s\n", version, commit, date)
		return sSuccess
	}

	lg, closeLog, err := initLog(p.logFile, p.jsonLog, p.verbose)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return sApplicationError
	}
	defer closeLog()

	stopTrace := initTrace(p.traceFile)
	defer stopTrace()

	cfg, err := config.Resolve()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return sConfigError
	}

	if err := serve(ctx, p, cfg, lg); err != nil {
		var cerr *config.Error
		if errors.As(err, &cerr) {
			fmt.Fprintln(stderr, err)
			return sConfigError
		}
		lg.ErrorContext(ctx, "server terminated", "error", err)
		return sApplicationError
	}
	return sSuccess
}

func loadSecrets(files []string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

func parseCmdLine(args []string, output io.Writer) (params, error) {
	fs := flag.NewFlagSet("redash-mcp", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(
			fs.Output(),
			"Redash MCP server, %s\n"+
				"Exposes Redash queries, data sources and results as MCP tools.\n"+
				"Configuration is read from the environment (%s, %s, %s).\n\n"+
				"Usage:  %s [flags]\n\n",
			version, config.EnvBaseURL, config.EnvAPIKey, config.EnvDefaultDataSource,
			filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}

	p := params{transport: mcp.TransportStdio}
	fs.Var(&p.transport, "transport", "MCP `transport`: \"stdio\", \"sse\" or \"http\"")
	fs.BoolFunc("sse", "shorthand for -transport=sse", func(string) error {
		p.transport = mcp.TransportSSE
		return nil
	})
	fs.BoolFunc("streamable-http", "shorthand for -transport=http", func(string) error {
		p.transport = mcp.TransportHTTP
		return nil
	})
	fs.StringVar(&p.listenAddr, "listen", "", "`address` to listen on for the sse and http transports\n(default \":$"+config.EnvPort+"\")")
	fs.StringVar(&p.logFile, "log", os.Getenv("LOG_FILE"), "log `file`, if not specified, messages are printed to STDERR")
	fs.BoolVar(&p.jsonLog, "json", false, "output logs in JSON format")
	fs.BoolVar(&p.verbose, "v", osenv.Value("DEBUG", false), "verbose messages")
	fs.StringVar(&p.traceFile, "trace", os.Getenv("TRACE_FILE"), "trace `file` (optional)")
	fs.BoolVar(&p.printVersion, "V", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return p, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %v", fs.Args())
		fmt.Fprintln(output, err)
		return p, err
	}
	return p, nil
}

// serve wires the backend client and serves the MCP server on the selected
// transport until ctx is cancelled.
func serve(ctx context.Context, p params, cfg *config.Config, lg *slog.Logger) error {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	cl, err := redash.New(cfg.BaseURL, cfg.APIKey,
		redash.WithLimiter(rate.NewLimiter(limit, cfg.Burst)),
		redash.WithLogger(lg),
		redash.WithUserAgent("redash-mcp/"+version),
	)
	if err != nil {
		return &config.Error{Problems: []string{err.Error()}}
	}
	poller := redash.NewPoller(cl,
		redash.WithTimeout(cfg.Timeout),
		redash.WithPollInterval(cfg.PollInterval),
		redash.WithPollerLogger(lg),
	)
	svc := redash.NewService(cl,
		redash.WithDefaultDataSource(cfg.DefaultDataSourceID),
		redash.WithPoller(poller),
	)
	newServer := func() *mcp.Server {
		return mcp.New(svc,
			mcp.WithLogger(lg),
			mcp.WithVersion(version),
			mcp.WithDefaultDataSource(svc.DefaultDataSource()),
		)
	}

	lg.InfoContext(ctx, "starting", "version", version, "transport", p.transport.String(), "backend", cfg.BaseURL)

	factory := func() *mcpsrv.MCPServer { return newServer().MCP() }
	var h transport.Mounter
	switch p.transport {
	case mcp.TransportStdio, "":
		return newServer().ServeStdio(ctx)
	case mcp.TransportSSE:
		h = transport.NewSSE(factory, transport.WithLogger(lg))
	case mcp.TransportHTTP:
		h = transport.NewStreamableHTTP(factory, transport.WithLogger(lg))
	default:
		return fmt.Errorf("unsupported transport: %s", p.transport)
	}

	if c, ok := h.(io.Closer); ok {
		defer c.Close()
	}

	addr := p.listenAddr
	if addr == "" {
		addr = ":" + strconv.Itoa(cfg.Port)
	}
	lg.InfoContext(ctx, "listening", "addr", addr, "transport", p.transport.String())
	return transport.ListenAndServe(ctx, addr, transport.NewRouter(lg, h))
}
