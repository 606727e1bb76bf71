// Package config defines service configuration structures and loading
// hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file, and environment vars.
// - External errors are wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBDriver selects persistence: memory, sqlite, or postgres.
	DBDriver string `koanf:"db_driver"`

	// DBDSN is the connection string for sqlite/postgres drivers.
	DBDSN string `koanf:"db_dsn"`

	// MaxListLimit caps result counts on list endpoints.
	MaxListLimit int `koanf:"max_list_limit"`

	// GeneratorURL points at the AI template-generation collaborator.
	// Empty disables the /templates/generate endpoint.
	GeneratorURL string `koanf:"generator_url"`

	// GeneratorTimeoutMS bounds each generation call.
	GeneratorTimeoutMS int `koanf:"generator_timeout_ms"`

	// CORSAllowedOrigins lists origins allowed by the HTTP layer.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// CadetNames seeds the in-memory cadet directory: id -> display name.
	CadetNames map[string]string `koanf:"cadet_names"`
}

// New creates a Config with defaults suitable for local development.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		DBDriver:           "memory",
		DBDSN:              "",
		MaxListLimit:       500,
		GeneratorURL:       "",
		GeneratorTimeoutMS: 30_000,
		CORSAllowedOrigins: []string{"*"},
		CadetNames:         map[string]string{},
	}
}
