package tmdb

import (
	"errors"
	"time"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w342"
	DefaultLanguage     = "en-US"
)

// Config TMDB client configuration
type Config struct {
	// BaseURL API root, without trailing slash
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// ImageBaseURL prefix joined with poster paths
	ImageBaseURL string `mapstructure:"image_base_url" yaml:"image_base_url"`

	// APIKey v3 API key, sent as the api_key query parameter
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	Language string        `mapstructure:"language" yaml:"language"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Validate fills defaults. An empty APIKey is allowed; calls then fail with ErrMissingAPIKey.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("tmdb: base_url is required")
	}
	if c.ImageBaseURL == "" {
		c.ImageBaseURL = DefaultImageBaseURL
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.Timeout < 0 {
		return errors.New("tmdb: timeout must not be negative")
	}
	return nil
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		ImageBaseURL: DefaultImageBaseURL,
		Language:     DefaultLanguage,
		Timeout:      10 * time.Second,
	}
}
