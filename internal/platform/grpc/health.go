package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/registrar/internal/platform/timeouts"
	gogrpc "google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// maxHealthBackoff caps both the poll interval and each probe's deadline.
const maxHealthBackoff = time.Second

// WaitForHealth polls the standard health service on conn until service
// reports SERVING. The empty service name probes the whole server. The
// interval doubles from timeouts.HealthPoll up to maxHealthBackoff.
func WaitForHealth(ctx context.Context, conn gogrpc.ClientConnInterface, service string, logf func(string, ...any)) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}

	client := grpc_health_v1.NewHealthClient(conn)
	wait := timeouts.HealthPoll
	for {
		servingStatus, err := probeHealth(ctx, client, service)
		switch {
		case err != nil:
			logf("waiting for gRPC health: %v", err)
		case servingStatus == grpc_health_v1.HealthCheckResponse_SERVING:
			logf("gRPC health check is SERVING")
			return nil
		default:
			logf("waiting for gRPC health: status %s", servingStatus)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("wait for gRPC health: %w", ctx.Err())
		case <-timer.C:
		}
		wait = min(wait*2, maxHealthBackoff)
	}
}

func probeHealth(ctx context.Context, client grpc_health_v1.HealthClient, service string) (grpc_health_v1.HealthCheckResponse_ServingStatus, error) {
	probeCtx, cancel := context.WithTimeout(ctx, maxHealthBackoff)
	defer cancel()
	resp, err := client.Check(probeCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}
