package gate

import "time"

// Config is the env-driven gate configuration.
type Config struct {
	Mode              string        `env:"GATE_MODE" envDefault:"validated"`
	ValidationTimeout time.Duration `env:"VALIDATION_TIMEOUT" envDefault:"3s"`
	LoginPath         string        `env:"LOGIN_PATH" envDefault:"/login"`
	DashboardPath     string        `env:"DASHBOARD_PATH" envDefault:"/dashboard"`
}

// NewFromConfig builds a Gate from cfg. Extra options are applied last.
func NewFromConfig(cfg Config, v Validator, opts ...Option) (*Gate, error) {
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	configOpts := []Option{
		WithMode(mode),
		WithTimeout(cfg.ValidationTimeout),
		WithPaths(Paths{Login: cfg.LoginPath, Dashboard: cfg.DashboardPath}),
	}
	return New(v, append(configOpts, opts...)...), nil
}
