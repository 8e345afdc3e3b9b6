// Package grpcauthctx attaches registry caller metadata to outgoing gRPC
// calls.
package grpcauthctx

import (
	"context"
	"strings"

	grpcmeta "github.com/louisbranch/registrar/internal/services/registry/api/grpc/metadata"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// WithPrincipal returns a context with principal metadata when principal is non-empty.
func WithPrincipal(ctx context.Context, principal string) context.Context {
	return appendIfPresent(ctx, grpcmeta.PrincipalHeader, principal)
}

// WithBearerToken returns a context carrying "authorization: Bearer <token>".
func WithBearerToken(ctx context.Context, token string) context.Context {
	token = strings.TrimSpace(token)
	if token == "" {
		return orBackground(ctx)
	}
	return appendIfPresent(ctx, grpcmeta.AuthorizationHeader, "Bearer "+token)
}

// WithLocale returns a context with the preferred response locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	return appendIfPresent(ctx, grpcmeta.LocaleHeader, locale)
}

// WithRequestID returns a context carrying a caller-chosen request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return appendIfPresent(ctx, grpcmeta.RequestIDHeader, requestID)
}

// CallerUnaryClientInterceptor stamps every unary call with the given
// principal, or with a bearer token when token is non-empty.
func CallerUnaryClientInterceptor(principal, token string) grpc.UnaryClientInterceptor {
	principal = strings.TrimSpace(principal)
	token = strings.TrimSpace(token)
	return func(
		ctx context.Context,
		method string,
		req any,
		reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		if token != "" {
			ctx = WithBearerToken(ctx, token)
		} else {
			ctx = WithPrincipal(ctx, principal)
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

func appendIfPresent(ctx context.Context, key, value string) context.Context {
	ctx = orBackground(ctx)
	value = strings.TrimSpace(value)
	if value == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, key, value)
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
