// Package config loads the server configuration from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"bookmark_backend/internal/platform/db"
	"bookmark_backend/internal/platform/redis"
)

type Config struct {
	Env      string `yaml:"env" env:"APP_ENV" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	HTTPServer `yaml:"http_server"`
	JWT        `yaml:"jwt"`
	Bcrypt     `yaml:"bcrypt"`

	DB    db.Config    `yaml:"db"`
	Redis redis.Config `yaml:"redis"`

	UserCacheTTL time.Duration `yaml:"user_cache_ttl" env:"USER_CACHE_TTL" env-default:"5m"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"15s"`
}

type JWT struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_TTL" env-default:"24h"`
	Issuer string        `yaml:"issuer" env:"JWT_ISSUER" env-default:"bookmark-backend"`
}

type Bcrypt struct {
	Cost           int `yaml:"cost" env:"BCRYPT_COST" env-default:"10"`
	MaxConcurrency int `yaml:"max_concurrency" env:"BCRYPT_MAX_CONCURRENCY" env-default:"0"`
}

// Load reads path (if non-empty) and then the environment, which takes precedence.
func Load(path string) (*Config, error) {
	var cfg Config

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load for process startup.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWT.TTL)
	}
	return nil
}
