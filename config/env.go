package config

import (
	"os"
	"strings"
)

// EnvOr returns the value of an environment variable or a default value.
func EnvOr(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

// Brokers parses a comma-separated broker list from the environment.
// Returns nil when the variable is unset, which disables Kafka wiring.
func Brokers(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}

	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
