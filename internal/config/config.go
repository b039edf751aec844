package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all client settings.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Replay   ReplayConfig   `mapstructure:"replay"`
}

// ServerConfig describes the game server connection.
type ServerConfig struct {
	URL      string `mapstructure:"url"`
	UserID   int    `mapstructure:"user_id"`
	TickRate int    `mapstructure:"tick_rate"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig holds the optional game-history database connection.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// ReplayConfig controls replay recording.
type ReplayConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
}

// Load reads configuration from the given file (if any), the environment,
// and built-in defaults, in that order of precedence from lowest to highest
// for defaults and highest for the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("BANG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.Server.TickRate <= 0 {
		return nil, fmt.Errorf("server.tick_rate must be positive, got %d", cfg.Server.TickRate)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.url", "ws://localhost:9090/server")
	v.SetDefault("server.user_id", 0)
	v.SetDefault("server.tick_rate", 60)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("database.dsn", "")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.address", ":9100")

	v.SetDefault("replay.enabled", true)
	v.SetDefault("replay.directory", "replays")
}
