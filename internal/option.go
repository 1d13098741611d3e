package internal

// Option customizes the server assembled by Run.
type Option func(*application)

type application struct {
	config *Config
}

// WithConfig supplies the loaded server configuration. Run refuses to start
// without one.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}
