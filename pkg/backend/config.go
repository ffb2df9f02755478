package backend

import "time"

// Config is the env-driven backend client configuration.
type Config struct {
	BaseURL string        `env:"BACKEND_URL,required"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
}

// NewFromConfig builds a Client from cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	return New(cfg.BaseURL, append([]Option{WithTimeout(cfg.Timeout)}, opts...)...)
}
