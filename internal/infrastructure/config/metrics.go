package config

// MetricsConfig holds metrics collection configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// Namespace prefixes every exported metric name
	Namespace string `mapstructure:"namespace" validate:"omitempty,max=32,excludesall= -."`
}
