package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// insecureJWTSecret is the built-in default; Validate refuses it outside development.
	insecureJWTSecret = "supersecretkey"

	minBcryptCost = 4
	maxBcryptCost = 31
)

type Config struct {
	Addr           string          `yaml:"addr"`
	Env            string          `yaml:"env"`
	JWTSecret      string          `yaml:"jwt_secret"`
	APITimeout     time.Duration   `yaml:"timeout"`
	DatabasePath   string          `yaml:"database_path"`
	TokenDuration  time.Duration   `yaml:"token_duration"`
	BcryptCost     int             `yaml:"bcrypt_cost"`
	MigrateOnStart bool            `yaml:"migrate_on_start"`
	MaxBodyBytes   int64           `yaml:"max_body_bytes"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig controls the per-client limiter in front of /api.
// A zero RequestsPerSecond is replaced with the default by Validate;
// a negative value disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

func LoadConfig(path string) (*Config, error) {
	apiTimeout := 15 * time.Second
	tokenDuration := 10 * time.Minute

	cfg := &Config{
		Addr:          getEnv("JOBBOARD_ADDR", ":5000"),
		Env:           getEnv("JOBBOARD_ENV", EnvProduction),
		JWTSecret:     getEnv("JOBBOARD_JWT_SECRET", insecureJWTSecret),
		APITimeout:    apiTimeout,
		DatabasePath:  getEnv("JOBBOARD_DATABASE_PATH", "jobboard.db"),
		TokenDuration: tokenDuration,
		BcryptCost:    10,
		MaxBodyBytes:  1 << 20,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks the configuration and fills defaults for optional sections.
func (c *Config) Validate() error {
	var errs []error

	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env == "" {
		c.Env = EnvProduction
	}
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		errs = append(errs, fmt.Errorf("env must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env))
	}
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt_secret is required"))
	} else if c.JWTSecret == insecureJWTSecret && !c.IsDevelopment() {
		errs = append(errs, errors.New("jwt_secret uses the insecure default; set JOBBOARD_JWT_SECRET"))
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database_path is required"))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if c.TokenDuration <= 0 {
		errs = append(errs, errors.New("token_duration must be positive"))
	}
	if c.BcryptCost < minBcryptCost || c.BcryptCost > maxBcryptCost {
		errs = append(errs, fmt.Errorf("bcrypt_cost must be between %d and %d", minBcryptCost, maxBcryptCost))
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 1 << 20
	}

	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 10
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 20
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether detailed diagnostics may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// RateLimitEnabled reports whether the /api limiter should be installed.
func (c *Config) RateLimitEnabled() bool {
	return c.RateLimit.RequestsPerSecond > 0
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
