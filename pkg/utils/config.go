package utils

import "maps"

// Config is an immutable snapshot of environment values
type Config struct {
	values map[string]string
}

// NewConfig creates a new Config instance with the provided key-value pairs
func NewConfig(values map[string]string) *Config {
	config := &Config{
		values: make(map[string]string),
	}

	maps.Copy(config.values, values)

	return config
}

// NewConfigFromEnv creates a new Config instance from the process environment,
// filling in keys the environment does not set from the given .env files
func NewConfigFromEnv(files ...string) *Config {
	return NewConfig(LoadEnv(files...))
}

// GetWithDefault retrieves a configuration value by key with a fallback default
func (c *Config) GetWithDefault(key, defaultValue string) string {
	if value, exists := c.values[key]; exists && value != "" {
		return value
	}
	return defaultValue
}

// ToMap returns a copy of all configuration values as a map
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string, len(c.values))
	maps.Copy(result, c.values)
	return result
}
