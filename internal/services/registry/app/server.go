// Package server wires the registry journal, domain and gRPC lifecycle.
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
	"time"

	"github.com/louisbranch/registrar/internal/platform/requestctx"
	"github.com/louisbranch/registrar/internal/platform/timeouts"
	"github.com/louisbranch/registrar/internal/services/registry/api/grpc/interceptors"
	registryservice "github.com/louisbranch/registrar/internal/services/registry/api/grpc/registry"
	"github.com/louisbranch/registrar/internal/services/registry/auth"
	"github.com/louisbranch/registrar/internal/services/registry/domain"
	registrysqlite "github.com/louisbranch/registrar/internal/services/registry/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Config holds everything the registry server needs at startup.
type Config struct {
	Addr           string
	DBPath         string
	BootstrapAdmin string
	Tokens         auth.TokenConfig
}

// Server hosts the registry gRPC API and journal lifecycle.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *registrysqlite.Store
}

// New opens the journal, verifies and replays it, registers the bootstrap
// admin and builds the gRPC server on cfg.Addr.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	store, err := openRegistryStore(ctx, cfg.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	registry, err := loadRegistry(ctx, store, cfg.BootstrapAdmin)
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, err
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		interceptors.Chain(interceptors.Options{Tokens: cfg.Tokens}),
	)
	healthServer := health.NewServer()
	registryservice.RegisterRegistryServer(grpcServer, registryservice.NewService(registry))
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(registryservice.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a registry server until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("registry server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.drain(timeouts.Shutdown)
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

// drain waits up to timeout for in-flight calls, then forces the stop.
func (s *Server) drain(timeout time.Duration) {
	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-stopped:
	case <-timer.C:
		log.Printf("graceful stop exceeded %s; forcing stop", timeout)
		s.grpcServer.Stop()
		<-stopped
	}
}

// Close releases registry server resources.
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
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close registry store: %v", err)
		}
	}
}

func openRegistryStore(ctx context.Context, path string) (*registrysqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = filepath.Join("data", "registrar.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := registrysqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open registry sqlite store: %w", err)
	}
	return store, nil
}

// loadRegistry verifies the journal hash chain, replays it and registers
// the bootstrap admin when one is configured.
func loadRegistry(ctx context.Context, store *registrysqlite.Store, bootstrapAdmin string) (*domain.Registry, error) {
	if err := store.VerifyChain(ctx); err != nil {
		return nil, fmt.Errorf("verify registry journal: %w", err)
	}
	registry, err := domain.Open(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("replay registry journal: %w", err)
	}
	if seq := registry.LastSeq(); seq > 0 {
		head, err := store.GetEvent(ctx, seq)
		if err != nil {
			return nil, fmt.Errorf("read journal head %d: %w", seq, err)
		}
		log.Printf("replayed %d events; head %s chain %s", seq, head.Type, head.ChainHash)
	}

	bootstrapAdmin = strings.TrimSpace(bootstrapAdmin)
	if bootstrapAdmin == "" {
		return registry, nil
	}
	created, role, err := registry.EnsureAdmin(requestctx.WithPrincipal(ctx, bootstrapAdmin), bootstrapAdmin)
	if err != nil {
		return nil, fmt.Errorf("bootstrap admin: %w", err)
	}
	switch {
	case created:
		log.Printf("registered bootstrap admin %s", bootstrapAdmin)
	case role != domain.RoleAdmin:
		log.Printf("bootstrap admin %s is already registered as %s", bootstrapAdmin, role)
	}
	return registry, nil
}
