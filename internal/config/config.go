package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
	Storage  StorageConfig  `envPrefix:"STORAGE_"`
	LLM      LLMConfig
	Gmail    GmailConfig  `envPrefix:"GMAIL_"`
	Wizard   WizardConfig `envPrefix:"WIZARD_"`
	Logging  LoggingConfig
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host         string `env:"HOST" envDefault:"localhost"`
	Port         int    `env:"PORT" envDefault:"5432"`
	User         string `env:"USER" envDefault:"postgres"`
	Password     string `env:"PASSWORD"`
	Name         string `env:"NAME" envDefault:"jobboard"`
	SSLMode      string `env:"SSLMODE" envDefault:"disable"`
	MaxOpenConns int    `env:"MAX_OPEN_CONNS" envDefault:"20"`
}

// StorageConfig selects where resumes are kept.
type StorageConfig struct {
	Driver         string        `env:"DRIVER" envDefault:"memory"`
	Bucket         string        `env:"BUCKET"`
	Region         string        `env:"REGION" envDefault:"us-east-1"`
	Endpoint       string        `env:"ENDPOINT"`
	MaxResumeBytes int64         `env:"MAX_RESUME_BYTES" envDefault:"5242880"`
	URLTTL         time.Duration `env:"URL_TTL" envDefault:"15m"`
}

// LLMConfig enables posting import and email summaries when an API key is set.
type LLMConfig struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	Model        string `env:"LLM_MODEL" envDefault:"gemini-2.5-flash"`
}

// GmailConfig enables the mailbox poller. Mailbox is the Gmail user ID
// the cursor is kept under; "me" is the authorised account.
type GmailConfig struct {
	Enabled         bool   `env:"ENABLED" envDefault:"false"`
	Mailbox         string `env:"MAILBOX" envDefault:"me"`
	CredentialsFile string `env:"CREDENTIALS_FILE" envDefault:"credential.json"`
	TokenFile       string `env:"TOKEN_FILE" envDefault:"token.json"`
	PollSchedule    string `env:"POLL_SCHEDULE" envDefault:"@every 1m"`
}

type WizardConfig struct {
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	PurgeSchedule string        `env:"PURGE_SCHEDULE" envDefault:"@every 10m"`
}

type LoggingConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return parse(env.Options{})
}

// FromMap builds a Config from an explicit environment, ignoring the process one.
func FromMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.Server.Port)
	}
	switch c.Storage.Driver {
	case "memory":
	case "s3":
		if c.Storage.Bucket == "" {
			return errors.New("STORAGE_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Storage.MaxResumeBytes <= 0 {
		return errors.New("STORAGE_MAX_RESUME_BYTES must be positive")
	}
	if c.Wizard.SessionTTL <= 0 {
		return errors.New("WIZARD_SESSION_TTL must be positive")
	}
	return nil
}

// DSN returns the postgres connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

// Addr returns the server address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
