package omdb

import (
	"errors"
	"time"
)

const DefaultBaseURL = "https://www.omdbapi.com/"

// Config OMDB client configuration
type Config struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string        `mapstructure:"api_key" yaml:"api_key"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Validate validates the configuration. Unlike TMDB the key is mandatory:
// callers only build an OMDB client when ratings enrichment is enabled.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("omdb: base_url is required")
	}
	if c.APIKey == "" {
		return errors.New("omdb: api_key is required")
	}
	if c.Timeout < 0 {
		return errors.New("omdb: timeout must not be negative")
	}
	return nil
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Timeout: 10 * time.Second,
	}
}
