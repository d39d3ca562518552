// Package config loads runtime settings from the environment (optionally
// seeded from a .env file) or from a YAML file named by CONFIG_PATH.
// Environment variables always win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
	BackendCookie   = "cookie"
	BackendRedis    = "redis"
)

type Config struct {
	HTTP struct {
		Addr               string        `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
		ReadTimeout        time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"15s"`
		WriteTimeout       time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
		IdleTimeout        time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
		CORSAllowedOrigins []string      `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	} `yaml:"http"`

	Credentials struct {
		Backend        string `yaml:"backend" env:"CREDENTIALS_BACKEND" env-default:"file"`
		File           string `yaml:"file" env:"CREDENTIALS_FILE" env-default:"users.json"`
		HashPasswords  bool   `yaml:"hash_passwords" env:"PASSWORD_HASHING" env-default:"true"`
		LoginRateLimit int    `yaml:"login_rate_limit" env:"LOGIN_RATE_LIMIT" env-default:"10"`
		// window after which a client's login bucket is refilled
		LoginRateWindow time.Duration `yaml:"login_rate_window" env:"LOGIN_RATE_WINDOW" env-default:"1m"`
	} `yaml:"credentials"`

	Model struct {
		Path    string        `yaml:"path" env:"MODEL_PATH" env-default:"model.json"`
		URL     string        `yaml:"url" env:"MODEL_URL"`
		Timeout time.Duration `yaml:"timeout" env:"MODEL_TIMEOUT" env-default:"10s"`
	} `yaml:"model"`

	Session struct {
		Backend string `yaml:"backend" env:"SESSION_BACKEND" env-default:"cookie"`
		Name    string `yaml:"name" env:"SESSION_NAME" env-default:"app-session"`
		AuthKey string `yaml:"auth_key" env:"SESSION_AUTH_KEY"`
		EncKey  string `yaml:"enc_key" env:"SESSION_ENC_KEY"`
		// 0 means a browser-session cookie
		MaxAge int  `yaml:"max_age" env:"SESSION_MAX_AGE" env-default:"0"`
		Secure bool `yaml:"secure" env:"SESSION_SECURE" env-default:"false"`
	} `yaml:"session"`

	Redis struct {
		Addr     string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
		Password string        `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
		TTL      time.Duration `yaml:"ttl" env:"REDIS_SESSION_TTL" env-default:"24h"`
	} `yaml:"redis"`

	Database struct {
		Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
		Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
		User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
		Password string `yaml:"password" env:"DB_PASSWORD" env-default:"postgres"`
		Name     string `yaml:"name" env:"DB_NAME" env-default:"carprice"`
		SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	} `yaml:"database"`

	History struct {
		Backend string `yaml:"backend" env:"HISTORY_BACKEND" env-default:"memory"`
		Limit   int    `yaml:"limit" env:"HISTORY_LIMIT" env-default:"5"`
	} `yaml:"history"`

	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	} `yaml:"log"`
}

// Load reads .env (if present), then the YAML file named by CONFIG_PATH
// (if set), then the environment, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UsesPostgres reports whether any component needs a database connection.
func (c *Config) UsesPostgres() bool {
	return c.Credentials.Backend == BackendPostgres || c.History.Backend == BackendPostgres
}

func (c *Config) Validate() error {
	c.Credentials.Backend = strings.ToLower(c.Credentials.Backend)
	c.Session.Backend = strings.ToLower(c.Session.Backend)
	c.History.Backend = strings.ToLower(c.History.Backend)

	switch c.Credentials.Backend {
	case BackendFile, BackendPostgres:
	default:
		return fmt.Errorf("unknown credentials backend %q", c.Credentials.Backend)
	}
	switch c.Session.Backend {
	case BackendCookie, BackendRedis:
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}
	switch c.History.Backend {
	case BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("unknown history backend %q", c.History.Backend)
	}

	if c.Credentials.Backend == BackendFile && c.Credentials.File == "" {
		return errors.New("credentials file path is empty")
	}
	if c.Model.Path == "" && c.Model.URL == "" {
		return errors.New("either model path or model url must be set")
	}
	if c.Session.Name == "" {
		return errors.New("session name is empty")
	}
	if c.Credentials.LoginRateLimit <= 0 || c.Credentials.LoginRateWindow <= 0 {
		return errors.New("login rate limit and window must be positive")
	}
	if c.History.Limit < 0 {
		c.History.Limit = 0
	}
	return nil
}
