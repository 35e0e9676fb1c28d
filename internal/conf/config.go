package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lk2023060901/movie-roulette/internal/pkg/logger"
	"github.com/lk2023060901/movie-roulette/internal/pkg/omdb"
	"github.com/lk2023060901/movie-roulette/internal/pkg/tmdb"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	TMDB   tmdb.Config  `mapstructure:"tmdb"`
	OMDB   omdb.Config  `mapstructure:"omdb"`
	Static StaticConfig `mapstructure:"static"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	GRPCPort        int           `mapstructure:"grpc_port"` // 0 disables the gRPC server
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StaticConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level            string        `mapstructure:"level"`
	Format           string        `mapstructure:"format"`
	Output           string        `mapstructure:"output"`
	File             FileLogConfig `mapstructure:"file"`
	EnableCaller     bool          `mapstructure:"enablecaller"`
	EnableStacktrace bool          `mapstructure:"enablestacktrace"`
}

type FileLogConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxsize"`
	MaxAge     int    `mapstructure:"maxage"`
	MaxBackups int    `mapstructure:"maxbackups"`
	Compress   bool   `mapstructure:"compress"`
}

// envBindings maps config keys to the environment variables that override them
var envBindings = map[string]string{
	"tmdb.api_key": "TMDB_API_KEY",
	"omdb.api_key": "OMDB_API_KEY",
	"server.port":  "PORT",
	"server.host":  "HOST",
	"log.level":    "LOG_LEVEL",
	"static.dir":   "STATIC_DIR",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.grpc_port", 0)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("tmdb.base_url", tmdb.DefaultBaseURL)
	v.SetDefault("tmdb.image_base_url", tmdb.DefaultImageBaseURL)
	v.SetDefault("tmdb.language", tmdb.DefaultLanguage)
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.timeout", 10*time.Second)

	v.SetDefault("omdb.base_url", omdb.DefaultBaseURL)
	v.SetDefault("omdb.api_key", "")
	v.SetDefault("omdb.timeout", 10*time.Second)

	v.SetDefault("static.dir", "web")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.enablecaller", true)
	v.SetDefault("log.enablestacktrace", true)
	v.SetDefault("log.file.filename", "logs/movie-roulette.log")
	v.SetDefault("log.file.maxsize", 100)
	v.SetDefault("log.file.maxage", 30)
	v.SetDefault("log.file.maxbackups", 10)
	v.SetDefault("log.file.compress", true)
}

// LoadConfig reads path when it exists, then applies environment overrides.
// An empty path or a missing file leaves defaults and environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Validate checks the settings the process cannot start without.
// Provider credentials are optional here: TMDB is checked per request
// and OMDB enrichment is simply skipped when its key is empty.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 {
		return fmt.Errorf("invalid server.grpc_port %d", c.Server.GRPCPort)
	}
	if c.Server.GRPCPort != 0 && c.Server.GRPCPort == c.Server.Port {
		return errors.New("server.grpc_port must differ from server.port")
	}
	return nil
}

// RatingsEnabled reports whether an OMDB key is configured
func (c *Config) RatingsEnabled() bool {
	return c.OMDB.APIKey != ""
}

// Logger converts the log section into a logger configuration
func (c *LogConfig) Logger() *logger.Config {
	return &logger.Config{
		Level:            c.Level,
		Format:           c.Format,
		Output:           c.Output,
		EnableCaller:     c.EnableCaller,
		EnableStacktrace: c.EnableStacktrace,
		File: logger.FileConfig{
			Filename:   c.File.Filename,
			MaxSize:    c.File.MaxSize,
			MaxAge:     c.File.MaxAge,
			MaxBackups: c.File.MaxBackups,
			Compress:   c.File.Compress,
		},
	}
}
