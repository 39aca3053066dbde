// Package config provides configuration management for patternbook
// using Viper for flexible configuration loading from files, environment
// variables, and command-line flags.
//
// The configuration system supports YAML files, environment variable
// overrides with the PATTERNBOOK_ prefix, and validation. It manages
// catalog source paths, output settings for the rendered document, the
// preview server, and development options like hot reload.
package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Catalog     CatalogConfig     `yaml:"catalog"`
	Output      OutputConfig      `yaml:"output"`
	Server      ServerConfig      `yaml:"server"`
	Development DevelopmentConfig `yaml:"development"`
}

type CatalogConfig struct {
	SourcePaths     []string `yaml:"source_paths"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
}

type OutputConfig struct {
	Title string `yaml:"title"`
	Path  string `yaml:"path"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	Open           bool     `yaml:"open"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DevelopmentConfig struct {
	HotReload bool `yaml:"hot_reload"`
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Apply defaults for catalog source paths only if not explicitly set
	if !viper.IsSet("catalog.source_paths") && len(config.Catalog.SourcePaths) == 0 {
		config.Catalog.SourcePaths = []string{"./catalog"}
	}

	// Handle source_paths set via viper (workaround for viper slice handling)
	if viper.IsSet("catalog.source_paths") && len(config.Catalog.SourcePaths) == 0 {
		sourcePaths := viper.GetStringSlice("catalog.source_paths")
		if len(sourcePaths) > 0 {
			config.Catalog.SourcePaths = sourcePaths
		}
	}

	// Handle exclude patterns set via viper (workaround for viper slice handling)
	if viper.IsSet("catalog.exclude_patterns") && len(config.Catalog.ExcludePatterns) == 0 {
		excludePatterns := viper.GetStringSlice("catalog.exclude_patterns")
		if len(excludePatterns) > 0 {
			config.Catalog.ExcludePatterns = excludePatterns
		}
	}

	// Handle allowed origins set via viper (workaround for viper slice handling)
	if viper.IsSet("server.allowed_origins") && len(config.Server.AllowedOrigins) == 0 {
		allowedOrigins := viper.GetStringSlice("server.allowed_origins")
		if len(allowedOrigins) > 0 {
			config.Server.AllowedOrigins = allowedOrigins
		}
	}

	// Handle development settings set via viper (workaround for viper bool handling)
	if viper.IsSet("development.hot_reload") {
		config.Development.HotReload = viper.GetBool("development.hot_reload")
	}

	// Apply default values for OutputConfig if not set
	if config.Output.Title == "" {
		config.Output.Title = "Pattern Catalog"
	}
	if config.Output.Path == "" {
		config.Output.Path = "PATTERNS.md"
	}

	// Apply default values for ServerConfig if not set
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.Host == "" {
		config.Server.Host = "localhost"
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
