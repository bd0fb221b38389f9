// Package mcpserver exposes a workspace's project tree as MCP tools over
// streamable HTTP.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mark3labs/mindtask/internal/logger"
	"github.com/mark3labs/mindtask/internal/tree"
)

// Workspace is the part of an open workspace the tools need.
type Workspace interface {
	Store() *tree.Store
	Commit(ctx context.Context) error
}

// Server manages an MCP HTTP server bound to one workspace.
type Server struct {
	ws      Workspace
	version string

	// ops serializes tool calls that combine several store operations.
	ops sync.Mutex

	mu        sync.Mutex
	mcpServer *server.MCPServer
	stdServer *http.Server
	port      int
}

// New creates a server for ws. The tools are registered immediately; the
// HTTP listener is not opened until Start.
func New(ws Workspace, version string) *Server {
	s := &Server{ws: ws, version: version}
	s.mcpServer = server.NewMCPServer(
		"mindtask",
		version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcpServer
}

// Start listens on addr (host:port, port 0 picks a free one) and serves
// the MCP endpoint at /mcp. Returns the bound port.
func (s *Server) Start(ctx context.Context, addr string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return 0, fmt.Errorf("listening on %s: %w", addr, err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	))
	s.stdServer = &http.Server{Handler: mux}

	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP server error: %v", err)
		}
	}()

	logger.Info("MCP server listening on port %d", s.port)
	return s.port, nil
}

// Stop shuts the HTTP server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}
	if err := s.stdServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("stopping mcp server: %w", err)
	}
	s.stdServer = nil
	logger.Debug("MCP server stopped")
	return nil
}

// URL returns the HTTP URL of the MCP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://127.0.0.1:%d/mcp", s.port)
}
