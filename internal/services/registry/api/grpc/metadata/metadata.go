// Package metadata defines the registry's gRPC headers and the interceptor
// that guarantees every call a request id.
package metadata

import (
	"context"
	"strings"

	"github.com/louisbranch/registrar/internal/platform/id"
	"github.com/louisbranch/registrar/internal/platform/requestctx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDHeader is the gRPC metadata key for request correlation IDs.
const RequestIDHeader = "x-registrar-request-id"

// PrincipalHeader carries the caller address when token auth is disabled.
const PrincipalHeader = "x-registrar-principal"

// LocaleHeader carries an Accept-Language style preference for
// user-facing error messages.
const LocaleHeader = "x-registrar-locale"

// AuthorizationHeader carries "Bearer <token>" when token auth is enabled.
const AuthorizationHeader = "authorization"

// IsPrintableASCII reports whether a string contains only printable ASCII characters.
func IsPrintableASCII(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < 0x20 || value[i] > 0x7e {
			return false
		}
	}
	return true
}

// FirstMetadataValue returns the first printable ASCII metadata value for a key.
func FirstMetadataValue(md metadata.MD, key string) string {
	if len(md) == 0 {
		return ""
	}
	for mdKey, values := range md {
		if !strings.EqualFold(mdKey, key) {
			continue
		}
		for _, value := range values {
			if IsPrintableASCII(value) {
				return value
			}
		}
	}
	return ""
}

// IncomingValue returns the first printable value of header in the
// incoming metadata, trimmed.
func IncomingValue(ctx context.Context, header string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	return strings.TrimSpace(FirstMetadataValue(md, header))
}

// BearerToken extracts the token of an "authorization: Bearer ..." header.
func BearerToken(ctx context.Context) string {
	value := IncomingValue(ctx, AuthorizationHeader)
	scheme, token, ok := strings.Cut(value, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// UnaryServerInterceptor stores the caller's request id in context,
// generating one when the caller sent none, and echoes it as a response
// header.
func UnaryServerInterceptor(idGenerator func() (string, error)) grpc.UnaryServerInterceptor {
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, requestID, err := ensureRequestID(ctx, idGenerator)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "ensure request metadata: %v", err)
		}
		if err := grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID)); err != nil {
			return nil, status.Errorf(codes.Internal, "set response metadata: %v", err)
		}
		return handler(ctx, req)
	}
}

func ensureRequestID(ctx context.Context, idGenerator func() (string, error)) (context.Context, string, error) {
	requestID := IncomingValue(ctx, RequestIDHeader)
	if requestID == "" {
		generated, err := idGenerator()
		if err != nil {
			return ctx, "", err
		}
		requestID = generated
	}
	return requestctx.WithRequestID(ctx, requestID), requestID, nil
}
