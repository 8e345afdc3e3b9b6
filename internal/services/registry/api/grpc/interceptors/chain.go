package interceptors

import (
	"github.com/louisbranch/registrar/internal/platform/i18n/catalog"
	grpcmeta "github.com/louisbranch/registrar/internal/services/registry/api/grpc/metadata"
	"github.com/louisbranch/registrar/internal/services/registry/auth"
	"google.golang.org/grpc"
)

// Options configures the registry interceptor chain.
type Options struct {
	Tokens      auth.TokenConfig
	Locales     *catalog.Bundle
	IDGenerator func() (string, error)
	Logf        func(string, ...any)
}

// Chain returns the registry's unary interceptors in order: request id,
// locale, identity, audit.
func Chain(opts Options) grpc.ServerOption {
	return grpc.ChainUnaryInterceptor(
		grpcmeta.UnaryServerInterceptor(opts.IDGenerator),
		LocaleInterceptor(opts.Locales),
		IdentityInterceptor(opts.Tokens),
		AuditInterceptor(opts.Logf),
	)
}
