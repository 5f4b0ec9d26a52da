package config

import "os"

// GetEnvOrDefault returns the named environment variable, or defaultValue if
// it is unset or empty. Used for the ambient knobs that don't belong in the
// cluster file: the cluster file's own path, node identity, storage
// directory, fsync toggle and diagnostics address.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
