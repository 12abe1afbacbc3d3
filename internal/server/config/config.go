package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/notesphere/notesphere/internal/validation"
)

// Config holds all server configuration
type Config struct {
	Addr         string        `mapstructure:"addr" validate:"required"`
	DatabasePath string        `mapstructure:"database_path" validate:"required"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl" validate:"min=0"`
	LogLevel     string        `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// Load читает конфигурацию: значения по умолчанию, затем опциональный
// YAML файл, затем переменные окружения NOTESPHERE_*.
//
// JWTSecret намеренно не required: его отсутствие — ConfigError,
// который сервер репортит как generic 500 на auth endpoints,
// а не отказ при старте.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":5001")
	v.SetDefault("database_path", "notesphere.db")
	v.SetDefault("token_ttl", 7*24*time.Hour)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("NOTESPHERE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validation.ValidateStruct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
