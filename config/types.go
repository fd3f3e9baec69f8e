package config

// Config represents the complete configuration structure
type Config struct {
	Monday   MondayConfig   `mapstructure:"monday"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Filters  FilterConfig   `mapstructure:"filters"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// MondayConfig holds monday.com API connection details
type MondayConfig struct {
	APIKey           string `mapstructure:"api_key"`
	URL              string `mapstructure:"url"`
	MaxRetries       int    `mapstructure:"max_retries"`
	RateLimitSeconds int    `mapstructure:"rate_limit_seconds"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds"`
}

// DefaultsConfig contains per-request defaults
type DefaultsConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// FilterConfig contains named filter presets
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
