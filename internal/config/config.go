package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/ledger"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Ledgerbridge"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	// Server.Timeout bounds a whole request, and a live import makes one
	// ledger call per group in sequence. It must cover every ledger call in
	// a request: once it fires, the remaining groups are abandoned while the
	// earlier ones stay posted.
	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"5m"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Upload struct {
		MaxBytes int64 `envconfig:"UPLOAD_MAX_BYTES" default:"10485760"`
	}

	// Ledger holds the defaults used when a request leaves connection fields empty.
	Ledger Ledger

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"ledgerbridge"`
	}

	Presets struct {
		Enabled bool `envconfig:"PRESETS_ENABLED" default:"false"`
	}
}

type Ledger struct {
	URL      string        `envconfig:"LEDGER_URL"`
	APIKey   string        `envconfig:"LEDGER_API_KEY"`
	BudgetID string        `envconfig:"LEDGER_BUDGET_ID"`
	Timeout  time.Duration `envconfig:"LEDGER_TIMEOUT" default:"30s"`
}

// Resolve fills the empty fields of a request's ledger settings from the
// configured defaults.
func (l Ledger) Resolve(req ledger.Config) ledger.Config {
	if req.ServerURL == "" {
		req.ServerURL = l.URL
	}

	if req.Credential == "" {
		req.Credential = l.APIKey
	}

	if req.BudgetID == "" {
		req.BudgetID = l.BudgetID
	}

	return req
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Server.Timeout <= cfg.Ledger.Timeout {
		return nil, fmt.Errorf("SERVER_TIMEOUT (%s) must exceed LEDGER_TIMEOUT (%s)", cfg.Server.Timeout, cfg.Ledger.Timeout)
	}

	return &cfg, nil
}
