// Package grpc holds client-side helpers shared by registrar processes.
package grpc

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Connector creates a client connection. grpc.NewClient satisfies it.
type Connector func(addr string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error)

// DialStage describes where a dial attempt failed.
type DialStage string

const (
	// DialStageConnect indicates the client could not be created.
	DialStageConnect DialStage = "connect"
	// DialStageHealth indicates the health check never reported SERVING.
	DialStageHealth DialStage = "health"
)

// DialError wraps dial and health check failures with the stage and target.
type DialError struct {
	Stage   DialStage
	Service string
	Addr    string
	Err     error
}

// Error implements the error interface.
func (e *DialError) Error() string {
	if e == nil {
		return "gRPC dial error"
	}
	service := e.Service
	if service == "" {
		service = "service"
	}
	if e.Stage == DialStageHealth {
		return fmt.Sprintf("%s gRPC health check failed for %s: %v", service, e.Addr, e.Err)
	}
	return fmt.Sprintf("dial %s gRPC %s: %v", service, e.Addr, e.Err)
}

// Unwrap returns the underlying error.
func (e *DialError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ClientDialOptions returns the standard options for registrar clients:
// plaintext transport and the otelgrpc stats handler, followed by extra.
func ClientDialOptions(extra ...gogrpc.DialOption) []gogrpc.DialOption {
	opts := []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
	return append(opts, extra...)
}

// DialWithHealth connects to addr and waits for its health service to
// report SERVING. timeout bounds the whole attempt when positive. The
// connection is closed if the health check fails.
func DialWithHealth(ctx context.Context, connect Connector, service, addr string, timeout time.Duration, logf func(string, ...any), opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if connect == nil {
		connect = gogrpc.NewClient
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, err := connect(addr, opts...)
	if err != nil {
		return nil, &DialError{Stage: DialStageConnect, Service: service, Addr: addr, Err: err}
	}
	if err := WaitForHealth(ctx, conn, "", logf); err != nil {
		_ = conn.Close()
		return nil, &DialError{Stage: DialStageHealth, Service: service, Addr: addr, Err: err}
	}
	return conn, nil
}
