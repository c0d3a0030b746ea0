package utils

import (
	"os"
	"strings"
)

// SafeEnv returns the trimmed value of the environment variable key, or
// fallback when it is unset or blank.
func SafeEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
