// Package server wires the minefield MCP runtime, score storage and gRPC
// health lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/minefield/internal/platform/i18n"
	"github.com/louisbranch/minefield/internal/services/minefield/domain"
	scoresqlite "github.com/louisbranch/minefield/internal/services/minefield/storage/sqlite"
	"github.com/louisbranch/minefield/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	serverName    = "minefield"
	serverVersion = "0.1.0"

	// HealthServiceName is the gRPC health service reported alongside "".
	HealthServiceName = "minefield.v1.Minefield"

	defaultHTTPAddr = "localhost:8081"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over streamable HTTP.
	TransportHTTP TransportKind = "http"
)

// Config configures the minefield server.
type Config struct {
	Transport TransportKind
	// HTTPAddr is the MCP listen address for the HTTP transport.
	HTTPAddr string
	// GRPCAddr is the health listen address. Empty disables gRPC.
	GRPCAddr    string
	DBPath      string
	Locale      string
	RevealMines bool
	MaxGames    int
}

// Server hosts the MCP server and its collaborators.
type Server struct {
	cfg          Config
	mcpServer    *mcp.Server
	store        *scoresqlite.Store
	games        *session.Manager
	httpListener net.Listener
	grpcListener net.Listener
	grpcServer   *grpc.Server
	health       *health.Server
}

// New opens the score store, registers tools and resources, and binds the
// configured listeners.
func New(cfg Config) (*Server, error) {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	if cfg.Transport != TransportStdio && cfg.Transport != TransportHTTP {
		return nil, fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	store, err := openScoreStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:   cfg,
		store: store,
		games: session.NewManager(session.Options{MaxGames: cfg.MaxGames}),
	}
	s.mcpServer = mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		SubscribeHandler:   resourceSubscribeHandler,
		UnsubscribeHandler: resourceUnsubscribeHandler,
	})
	registerTools(s.mcpServer, s.deps())
	registerResources(s.mcpServer, s.deps())

	if cfg.Transport == TransportHTTP {
		addr := cfg.HTTPAddr
		if strings.TrimSpace(addr) == "" {
			addr = defaultHTTPAddr
		}
		s.httpListener, err = net.Listen("tcp", addr)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("listen on %s: %w", addr, err)
		}
	}
	if strings.TrimSpace(cfg.GRPCAddr) != "" {
		if err := s.listenHealth(cfg.GRPCAddr); err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

// Run creates and serves a minefield server until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	s, err := New(cfg)
	if err != nil {
		return err
	}
	return s.Serve(ctx)
}

func (s *Server) deps() domain.Deps {
	return domain.Deps{
		Games:       s.games,
		Scores:      s.store,
		Printer:     i18n.Printer(i18n.ResolveTag(s.cfg.Locale)),
		RevealMines: s.cfg.RevealMines,
		Notify:      s.notifyResourceUpdated,
	}
}

func (s *Server) notifyResourceUpdated(ctx context.Context, uri string) {
	if strings.TrimSpace(uri) == "" {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.mcpServer.ResourceUpdated(ctx, &mcp.ResourceUpdatedNotificationParams{URI: uri}); err != nil {
		log.Printf("mcp resource updated notify failed: uri=%s err=%v", uri, err)
	}
}

// HTTPAddr returns the MCP HTTP listener address, or "" for stdio.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// GRPCAddr returns the health listener address, or "" when disabled.
func (s *Server) GRPCAddr() string {
	if s == nil || s.grpcListener == nil {
		return ""
	}
	return s.grpcListener.Addr().String()
}

// Serve runs the MCP transport and the health server until ctx ends or either
// fails, then releases every resource.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	switch s.cfg.Transport {
	case TransportHTTP:
		return s.serveWithHealth(ctx, s.serveHTTP)
	default:
		return s.serveWithHealth(ctx, func(ctx context.Context) error {
			return s.serveWithTransport(ctx, &mcp.StdioTransport{})
		})
	}
}

func (s *Server) serveWithHealth(ctx context.Context, serveMCP func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var healthErr chan error
	if s.grpcServer != nil {
		healthErr = make(chan error, 1)
		log.Printf("minefield health listening at %v", s.grpcListener.Addr())
		go func() {
			err := s.grpcServer.Serve(s.grpcListener)
			if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				cancel()
			}
			healthErr <- err
		}()
	}

	err := serveMCP(ctx)
	if s.grpcServer == nil {
		return err
	}
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
	if herr := <-healthErr; herr != nil && !errors.Is(herr, grpc.ErrServerStopped) {
		herr = fmt.Errorf("serve gRPC: %w", herr)
		if err == nil {
			return herr
		}
		return fmt.Errorf("%v; %w", err, herr)
	}
	return err
}

// serveWithTransport runs the MCP server over transport until the client
// disconnects or ctx ends.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// Close releases listeners, the gRPC server and the score store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.grpcListener != nil {
		_ = s.grpcListener.Close()
	}
	if s.httpListener != nil {
		_ = s.httpListener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close score store: %v", err)
		}
		s.store = nil
	}
}

func (s *Server) listenHealth(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.grpcListener = listener
	s.grpcServer = grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	s.health = health.NewServer()
	grpc_health_v1.RegisterHealthServer(s.grpcServer, s.health)
	s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(HealthServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	return nil
}

func openScoreStore(path string) (*scoresqlite.Store, error) {
	if strings.TrimSpace(path) == "" {
		path = filepath.Join("data", "minefield.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := scoresqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open score sqlite store: %w", err)
	}
	return store, nil
}

// resourceSubscribeHandler accepts subscriptions for minefield resources.
func resourceSubscribeHandler(_ context.Context, req *mcp.SubscribeRequest) error {
	if req == nil || req.Params == nil {
		return fmt.Errorf("resource uri is required")
	}
	return validateResourceURI(req.Params.URI)
}

func resourceUnsubscribeHandler(_ context.Context, req *mcp.UnsubscribeRequest) error {
	if req == nil || req.Params == nil {
		return fmt.Errorf("resource uri is required")
	}
	return validateResourceURI(req.Params.URI)
}

func validateResourceURI(uri string) error {
	uri = strings.TrimSpace(uri)
	switch {
	case uri == "":
		return fmt.Errorf("resource uri is required")
	case uri == domain.ScoresURI:
		return nil
	case strings.HasPrefix(uri, domain.GameURI("")) && len(uri) > len(domain.GameURI("")):
		return nil
	default:
		return fmt.Errorf("unknown resource %q", uri)
	}
}
