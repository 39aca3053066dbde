package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// validateConfig checks the assembled configuration before any command
// acts on it.
func validateConfig(config *Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return &ValidationError{
			Field:       "server.port",
			Value:       config.Server.Port,
			Message:     fmt.Sprintf("port %d is outside the valid range 1-65535", config.Server.Port),
			Suggestions: []string{"use a port between 1024 and 65535 for unprivileged use"},
		}
	}

	if strings.ContainsAny(config.Server.Host, " \t\n\r") {
		return &ValidationError{
			Field:   "server.host",
			Value:   config.Server.Host,
			Message: "host must not contain whitespace",
		}
	}

	if len(config.Catalog.SourcePaths) == 0 {
		return &ValidationError{
			Field:       "catalog.source_paths",
			Message:     "at least one catalog source path is required",
			Suggestions: []string{"add source_paths to .patternbook.yml", "run `patternbook init` to scaffold a catalog"},
		}
	}

	for _, path := range config.Catalog.SourcePaths {
		if !isValidSourcePath(path) {
			return &ValidationError{
				Field:       "catalog.source_paths",
				Value:       path,
				Message:     fmt.Sprintf("source path %q is not allowed", path),
				Suggestions: []string{"use paths relative to the project root, without .. traversal"},
			}
		}
	}

	if strings.TrimSpace(config.Output.Path) == "" {
		return &ValidationError{
			Field:   "output.path",
			Message: "output path must not be empty",
		}
	}

	return nil
}

// isValidSourcePath rejects empty paths, traversal outside the project,
// and embedded control characters.
func isValidSourcePath(path string) bool {
	if path == "" || strings.ContainsAny(path, "\x00\n\r") {
		return false
	}
	clean := filepath.Clean(path)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}
