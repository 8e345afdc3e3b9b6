package interceptors

import (
	"context"

	"github.com/louisbranch/registrar/internal/platform/i18n/catalog"
	"github.com/louisbranch/registrar/internal/platform/requestctx"
	grpcmeta "github.com/louisbranch/registrar/internal/services/registry/api/grpc/metadata"
	"golang.org/x/text/language"
	"google.golang.org/grpc"
)

// LocaleInterceptor resolves the locale header against bundle and stores the
// matched locale in context. A nil bundle uses the embedded catalogs.
func LocaleInterceptor(bundle *catalog.Bundle) grpc.UnaryServerInterceptor {
	if bundle == nil {
		bundle = catalog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if preference := grpcmeta.IncomingValue(ctx, grpcmeta.LocaleHeader); preference != "" {
			if tag, err := language.Parse(bundle.Match(preference)); err == nil {
				ctx = requestctx.WithLocale(ctx, tag)
			}
		}
		return handler(ctx, req)
	}
}
