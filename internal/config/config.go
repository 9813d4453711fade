// Package config resolves the server's typed configuration from an
// environment snapshot. Nothing here reads the process environment; the
// entry point hands in the values it loaded.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ethanbaker/visionsync/pkg/realtime"
	"github.com/ethanbaker/visionsync/pkg/utils"
)

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// ErrInvalidMode is returned when APP_ENV names neither mode
var ErrInvalidMode = errors.New("invalid APP_ENV")

// Config holds everything the server builder needs
type Config struct {
	Port string `env:"PORT" envDefault:"3000"`
	Mode string `env:"APP_ENV" envDefault:"development"`

	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	OpenAIOrgID     string        `env:"OPENAI_ORG_ID"`
	OpenAIProjectID string        `env:"OPENAI_PROJECT_ID"`
	RealtimeBaseURL string        `env:"REALTIME_BASE_URL" envDefault:"https://api.openai.com/v1/"`
	RealtimeTimeout time.Duration `env:"REALTIME_TIMEOUT" envDefault:"30s"`
	RealtimeModel   string        `env:"REALTIME_MODEL"`
	RealtimeVoice   string        `env:"REALTIME_VOICE"`
	PresetFile      string        `env:"REALTIME_PRESET_FILE"`

	DevDir  string `env:"CLIENT_DEV_DIR" envDefault:"./client"`
	DistDir string `env:"CLIENT_DIST_DIR" envDefault:"./dist/client"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Session is the resolved model/voice preset (env > preset file > defaults)
	Session realtime.SessionConfig
}

// Load parses the configuration out of an environment snapshot
func Load(values *utils.Config) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: values.ToMap()}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Mode != ModeDevelopment && cfg.Mode != ModeProduction {
		return nil, fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidMode, cfg.Mode, ModeDevelopment, ModeProduction)
	}

	preset := realtime.SessionConfig{}
	if cfg.PresetFile != "" {
		var err error
		if preset, err = realtime.LoadPreset(cfg.PresetFile); err != nil {
			return nil, err
		}
	}

	cfg.Session = realtime.SessionConfig{
		Model: cfg.RealtimeModel,
		Voice: cfg.RealtimeVoice,
	}.Merge(preset).Merge(realtime.DefaultSessionConfig())

	return &cfg, nil
}

// StaticRoot returns the one directory assets are served from for this mode
func (c *Config) StaticRoot() string {
	if c.Mode == ModeProduction {
		return c.DistDir
	}
	return c.DevDir
}

// RealtimeOptions builds the upstream client options
func (c *Config) RealtimeOptions() realtime.ClientOptions {
	return realtime.ClientOptions{
		APIKey:       c.OpenAIAPIKey,
		BaseURL:      c.RealtimeBaseURL,
		Organization: c.OpenAIOrgID,
		Project:      c.OpenAIProjectID,
		Timeout:      c.RealtimeTimeout,
		Session:      c.Session,
	}
}
