package pages

import "time"

type Config struct {
	PublicCacheTTL time.Duration `env:"PUBLIC_CACHE_TTL" envDefault:"1m"`
	// RootDomain is shown in public note links, e.g. ada.notes.example.
	RootDomain string `env:"ROOT_DOMAIN"`
}
