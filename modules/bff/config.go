package bff

// Config is the env-driven API configuration.
type Config struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	MaxUploadSize  int64    `env:"MAX_UPLOAD_SIZE" envDefault:"5242880"`
}
