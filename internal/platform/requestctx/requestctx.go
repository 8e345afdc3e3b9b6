// Package requestctx carries caller identity and request correlation values
// through context once the transport layer has resolved them.
package requestctx

import (
	"context"

	"golang.org/x/text/language"
)

type principalContextKey struct{}

type requestIDContextKey struct{}

type localeContextKey struct{}

// WithPrincipal stores the authenticated caller address in context.
func WithPrincipal(ctx context.Context, principal string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext returns the caller address stored in context.
func PrincipalFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(principalContextKey{}).(string)
	return value
}

// WithRequestID stores the request correlation ID in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

// RequestIDFromContext returns the request correlation ID stored in context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey{}).(string)
	return value
}

// WithLocale stores the negotiated response locale in context.
func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, localeContextKey{}, tag)
}

// LocaleFromContext returns the negotiated locale, or language.Und when the
// caller did not ask for one.
func LocaleFromContext(ctx context.Context) language.Tag {
	if ctx == nil {
		return language.Und
	}
	tag, ok := ctx.Value(localeContextKey{}).(language.Tag)
	if !ok {
		return language.Und
	}
	return tag
}

// LocaleName returns the negotiated locale as a BCP 47 tag, or "" when the
// caller did not ask for one.
func LocaleName(ctx context.Context) string {
	tag := LocaleFromContext(ctx)
	if tag == language.Und {
		return ""
	}
	return tag.String()
}
