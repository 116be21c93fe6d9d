package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		Host string `yaml:"host" env:"LISTEN_HOST"`
		Port int    `yaml:"port" env:"PORT" env-default:"8080"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path" env:"DATABASE_PATH" env-default:"blogful.db"`
	} `yaml:"database"`

	Session struct {
		Secret string `yaml:"secret" env:"SESSION_SECRET"`
		Secure bool   `yaml:"secure" env:"SESSION_SECURE" env-default:"false"`
		MaxAge int    `yaml:"max_age" env:"SESSION_MAX_AGE" env-default:"604800"`
	} `yaml:"session"`

	Blog struct {
		PageSize int `yaml:"page_size" env:"PAGE_SIZE" env-default:"10"`
		// StrictOwnership stops any logged-in user from editing posts
		// that have no author.
		StrictOwnership bool `yaml:"strict_ownership" env:"STRICT_OWNERSHIP"`
	} `yaml:"blog"`
}

var ErrNoSessionSecret = errors.New("SESSION_SECRET not set")

// Load reads the YAML file named by CONFIG_PATH when set, otherwise the
// environment (after loading a local .env file if one exists).
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("Error loading .env file: %v", err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Blog.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", c.Blog.PageSize)
	}
	return nil
}

// RequireSessionSecret fails when no secret is configured for signing
// session cookies. Only the web server needs one.
func (c *Config) RequireSessionSecret() error {
	if c.Session.Secret == "" {
		return ErrNoSessionSecret
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
