// Package service hosts the TrickLens MCP server: the double-dummy
// solver, the play analyzer, duplicate scoring, and the board archive
// exposed as MCP tools over stdio.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fifthchair/tricklens/internal/archive"
	sqlitearchive "github.com/fifthchair/tricklens/internal/archive/sqlite"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "TrickLens MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Config configures the MCP server.
type Config struct {
	// DBPath is the board archive to serve lookups from. Empty runs
	// without an archive; the archive tools answer with a clean error.
	DBPath string
}

// Server hosts the MCP server and the board archive behind it.
type Server struct {
	mcpServer *mcp.Server
	store     archive.Store
}

// New creates a configured MCP server. An empty dbPath leaves the board
// archive unconfigured: solving, analysis, and scoring still work.
func New(dbPath string) (*Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	var store archive.Store
	if dbPath != "" {
		s, err := sqlitearchive.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open board archive %s: %w", dbPath, err)
		}
		store = s
	}

	registerAnalysisTools(mcpServer)
	registerArchiveTools(mcpServer, store)

	return &Server{mcpServer: mcpServer, store: store}, nil
}

// Run creates and serves the MCP server on stdio until the context ends.
func Run(ctx context.Context, cfg Config) error {
	return runWithTransport(ctx, cfg.DBPath, &mcp.StdioTransport{})
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the board archive held by the server.
func (s *Server) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return err
	}
	s.store = nil
	return nil
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close board archive: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close board archive: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// runWithTransport creates a server and serves it over the provided transport.
func runWithTransport(ctx context.Context, dbPath string, transport mcp.Transport) error {
	server, err := New(dbPath)
	if err != nil {
		return err
	}
	return server.serveWithTransport(ctx, transport)
}
