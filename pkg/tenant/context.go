package tenant

import (
	"context"
	"log/slog"
)

// Info describes a request that was rewritten to a tenant page.
type Info struct {
	Tenant       string
	OriginalPath string
}

type contextKey struct{}

func WithInfo(ctx context.Context, info Info) context.Context {
	return context.WithValue(ctx, contextKey{}, info)
}

// FromContext reports the rewrite applied to the current request, if any.
func FromContext(ctx context.Context) (Info, bool) {
	info, ok := ctx.Value(contextKey{}).(Info)
	return info, ok
}

// LoggerExtractor adds the tenant to log records of rewritten requests.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if info, ok := FromContext(ctx); ok {
			return slog.String("tenant", info.Tenant), true
		}
		return slog.Attr{}, false
	}
}
