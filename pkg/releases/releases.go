package releases

import (
	"context"
	"errors"
	"time"

	"github.com/webnotes/notesweb/pkg/backend"
	"github.com/webnotes/notesweb/pkg/cache"
)

const (
	IntelAsset = "macos_client-darwin-amd64.zip"
	ArmAsset   = "macos_client-darwin-arm64.zip"
)

var (
	// ErrNotFound means the latest release is missing one of its assets.
	ErrNotFound      = errors.New("releases: not found")
	ErrInvalidConfig = errors.New("releases: invalid configuration")
)

// Source finds the download links of the latest desktop client.
type Source interface {
	Latest(ctx context.Context) (backend.Binaries, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (backend.Binaries, error)

func (f SourceFunc) Latest(ctx context.Context) (backend.Binaries, error) { return f(ctx) }

// FromBackend asks the notes backend.
func FromBackend(c *backend.Client) Source {
	return SourceFunc(func(ctx context.Context) (backend.Binaries, error) {
		b, err := c.LatestBinaries(ctx)
		if errors.Is(err, backend.ErrNotFound) {
			return b, errors.Join(ErrNotFound, err)
		}
		return b, err
	})
}

// Cached keeps answers from src in c for ttl.
func Cached(src Source, c cache.Cache, ttl time.Duration) Source {
	l := cache.NewLoader[backend.Binaries](c, ttl, cache.WithPrefix("releases:"))
	return SourceFunc(func(ctx context.Context) (backend.Binaries, error) {
		return l.Load(ctx, "macos_client", src.Latest)
	})
}
