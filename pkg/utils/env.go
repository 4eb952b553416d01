package utils

import "os"

// EnvOrDefault returns the environment value or fallback when the
// variable is unset or empty.
func EnvOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
