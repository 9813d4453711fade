package utils

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv reads environment variables from the process and the given .env files
// The process environment wins over any file, and earlier files win over later ones.
// Files are read without being exported into the process environment.
func LoadEnv(files ...string) map[string]string {
	config := make(map[string]string)

	// Read each file in order
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}

		values, err := godotenv.Read(file)
		if err != nil {
			log.Printf("[UTILS]: Warning, could not load %s: %v", file, err)
			continue
		}

		for key, value := range values {
			if _, exists := config[key]; !exists {
				config[key] = value
			}
		}
	}

	// Overlay the process environment
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if ok && key != "" {
			config[key] = value
		}
	}

	return config
}

// GetEnvWithDefault returns an environment variable value or a default if not set
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
