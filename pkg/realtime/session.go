package realtime

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModel = "gpt-4o-mini-realtime-preview-2024-12-17"
	DefaultVoice = "verse"
)

// SessionConfig is the fixed model/voice pair sent with every session request
type SessionConfig struct {
	Model string `json:"model" yaml:"model"`
	Voice string `json:"voice" yaml:"voice"`
}

// DefaultSessionConfig returns the session preset used when nothing overrides it
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Model: DefaultModel,
		Voice: DefaultVoice,
	}
}

// Merge returns a copy of s with empty fields taken from fallback
func (s SessionConfig) Merge(fallback SessionConfig) SessionConfig {
	if s.Model == "" {
		s.Model = fallback.Model
	}
	if s.Voice == "" {
		s.Voice = fallback.Voice
	}
	return s
}

// LoadPreset reads a session preset from a YAML file
func LoadPreset(path string) (SessionConfig, error) {
	var preset SessionConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return preset, fmt.Errorf("failed to read preset %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &preset); err != nil {
		return preset, fmt.Errorf("failed to parse preset %s: %w", path, err)
	}

	return preset, nil
}
