package releases

import (
	"context"
	"fmt"
	"time"

	"github.com/webnotes/notesweb/pkg/backend"
)

// Config selects where release information comes from: "backend" or
// "s3".
type Config struct {
	Source   string        `env:"RELEASES_SOURCE" envDefault:"backend"`
	CacheTTL time.Duration `env:"RELEASES_CACHE_TTL" envDefault:"10m"`
	S3       S3Config
}

func NewFromConfig(ctx context.Context, cfg Config, client *backend.Client, opts ...S3Option) (Source, error) {
	switch cfg.Source {
	case "", "backend":
		return FromBackend(client), nil
	case "s3":
		return NewS3Source(ctx, cfg.S3, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidConfig, cfg.Source)
	}
}
