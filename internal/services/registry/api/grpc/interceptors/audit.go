package interceptors

import (
	"context"
	"log"
	"time"

	"github.com/louisbranch/registrar/internal/platform/requestctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// AuditInterceptor logs one line per unary call with the method, caller,
// request id and resulting status code, and tags the active span with the
// same values. A nil logf uses log.Printf.
func AuditInterceptor(logf func(string, ...any)) grpc.UnaryServerInterceptor {
	if logf == nil {
		logf = log.Printf
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		principal := requestctx.PrincipalFromContext(ctx)
		requestID := requestctx.RequestIDFromContext(ctx)
		code := status.Code(err)

		trace.SpanFromContext(ctx).SetAttributes(
			attribute.String("registry.principal", principal),
			attribute.String("registry.request_id", requestID),
		)
		logf("audit method=%s principal=%q request_id=%s code=%s duration=%s",
			info.FullMethod, principal, requestID, code, time.Since(start).Round(time.Microsecond))
		return resp, err
	}
}
