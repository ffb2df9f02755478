package app

import (
	"time"

	"github.com/webnotes/notesweb/modules/bff"
	"github.com/webnotes/notesweb/modules/pages"
	"github.com/webnotes/notesweb/pkg/backend"
	"github.com/webnotes/notesweb/pkg/cookie"
	"github.com/webnotes/notesweb/pkg/gate"
	"github.com/webnotes/notesweb/pkg/httpserver"
	"github.com/webnotes/notesweb/pkg/ratelimiter"
	"github.com/webnotes/notesweb/pkg/redis"
	"github.com/webnotes/notesweb/pkg/releases"
)

// Config aggregates the settings of every component. Only BACKEND_URL is
// required.
type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"notesweb"`
	LogLevel    string `env:"LOG_LEVEL"`

	// Domain is the apex domain tenants live under, e.g. "notes.example".
	// Empty accepts any "<tenant>.<domain>.<tld>" host.
	Domain   string   `env:"APP_DOMAIN"`
	Reserved []string `env:"RESERVED_SUBDOMAINS" envDefault:"www" envSeparator:","`

	NotesTTL      time.Duration `env:"NOTES_STORE_TTL" envDefault:"5m"`
	CacheCapacity int           `env:"PUBLIC_CACHE_CAPACITY" envDefault:"1024"`

	HTTP      httpserver.Config
	Backend   backend.Config
	Cookie    cookie.Config
	Gate      gate.Config
	Redis     redis.Config
	RateLimit ratelimiter.Config
	Releases  releases.Config
	API       bff.Config
	Pages     pages.Config
}
