// Package interceptors holds the registry's unary server interceptors:
// locale negotiation, caller identity and per-call auditing.
package interceptors

import (
	"context"
	"log"

	apperrors "github.com/louisbranch/registrar/internal/platform/errors"
	"github.com/louisbranch/registrar/internal/platform/requestctx"
	grpcmeta "github.com/louisbranch/registrar/internal/services/registry/api/grpc/metadata"
	"github.com/louisbranch/registrar/internal/services/registry/auth"
	"google.golang.org/grpc"
)

// IdentityInterceptor stores the caller principal in context.
//
// Without a token secret the principal header is trusted as given. With one,
// the principal is the subject of the bearer token and the header is
// ignored; a call without a token runs anonymously and a bad token is
// rejected as UNAUTHENTICATED.
func IdentityInterceptor(tokens auth.TokenConfig) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		principal, err := resolvePrincipal(ctx, tokens)
		if err != nil {
			log.Printf("reject %s request_id=%s: %v", info.FullMethod, requestctx.RequestIDFromContext(ctx), err)
			return nil, apperrors.HandleError(err, requestctx.LocaleName(ctx))
		}
		return handler(requestctx.WithPrincipal(ctx, principal), req)
	}
}

func resolvePrincipal(ctx context.Context, tokens auth.TokenConfig) (string, error) {
	if !tokens.Enabled() {
		return grpcmeta.IncomingValue(ctx, grpcmeta.PrincipalHeader), nil
	}
	raw := grpcmeta.BearerToken(ctx)
	if raw == "" {
		return "", nil
	}
	return auth.VerifyToken(tokens, raw)
}
