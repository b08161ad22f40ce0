package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"question-bank" validate:"required"`
	Env                     string        `env:"APP_ENV" envDefault:"development" validate:"oneof=development staging production test"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:10000" validate:"required,hostname_port"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s" validate:"gt=0"`

	Storage Storage
	Admin   Admin
	Session Session
	Upload  Upload
	CORS    CORS
}

// Storage points at the two JSON files backing the service.
type Storage struct {
	QuestionsFile   string `env:"QUESTIONS_FILE" envDefault:"questions.json" validate:"required"`
	CredentialsFile string `env:"CREDENTIALS_FILE" envDefault:"admin_credentials.json" validate:"required,nefield=QuestionsFile"`
}

// Admin seeds the credential file when it does not exist yet.
type Admin struct {
	DefaultUsername string `env:"ADMIN_DEFAULT_USERNAME" envDefault:"admin" validate:"required"`
	DefaultPassword string `env:"ADMIN_DEFAULT_PASSWORD" envDefault:"admin123" validate:"required"`
}

// Session governs token lifetime and cleanup.
type Session struct {
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"2h" validate:"gt=0"`
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"10m" validate:"gt=0"`
}

// Upload limits CSV imports.
type Upload struct {
	MaxBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760" validate:"gt=0"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*" validate:"min=1"`
	AllowedMethods []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS" validate:"min=1"`
	AllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
	MaxAge         int      `env:"CORS_MAX_AGE" envDefault:"3600" validate:"gte=0"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct-level constraints declared in validate tags.
func Validate(cfg *App) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}
