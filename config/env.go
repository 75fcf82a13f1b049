package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFiles are loaded by LoadEnvFiles when no paths are given.
var DefaultEnvFiles = []string{".env.local", ".env"}

// LoadEnvFiles loads environment files in order. Missing files are skipped
// and variables already set in the environment are never overwritten.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = DefaultEnvFiles
	}

	for _, file := range paths {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	return nil
}

// envVarPattern matches ${VAR} and ${VAR:-default}. Bare $VAR is left alone.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-[^}]*)?\}`)

// ExpandEnv replaces ${VAR} and ${VAR:-default} references in s with values
// from the environment. Unset variables expand to the default, or to the empty
// string when there is none.
func ExpandEnv(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		if val, ok := os.LookupEnv(parts[1]); ok && val != "" {
			return val
		}
		return strings.TrimPrefix(parts[2], ":-")
	})
}

// ProviderAPIKey returns the API key environment variable of a model provider.
func ProviderAPIKey(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}
