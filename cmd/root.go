// Package cmd provides the command-line interface for patternbook with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --port, etc.) - highest priority
//	2. PATTERNBOOK_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (PATTERNBOOK_SERVER_PORT, etc.)
//	4. Configuration files (.patternbook.yml) - lowest priority
//
// Environment Variables:
//
//	PATTERNBOOK_CONFIG_FILE: Path to custom configuration file
//	PATTERNBOOK_SERVER_PORT: Override preview server port
//	PATTERNBOOK_OUTPUT_PATH: Override rendered document destination
//	PATTERNBOOK_DEVELOPMENT_HOT_RELOAD: Enable/disable hot reload
//	And more following the PATTERNBOOK_<SECTION>_<OPTION> pattern
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/patternbook/patternbook/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "patternbook",
	Short: "A catalog renderer for software design principles and patterns",
	Long: `Patternbook turns structured descriptions of design principles (DRY,
KISS, YAGNI) and design patterns (Factory, Singleton, Observer, ...)
into a single, reproducible Markdown document.

Key Features:
  • Catalog discovery from YAML source files
  • Deterministic Markdown rendering (same catalog, same bytes)
  • Live preview server with WebSocket reload
  • File watching with re-render on change
  • Catalog validation with precise error reporting

Quick Start:
  patternbook init                Scaffold a starter catalog
  patternbook render              Render the catalog document
  patternbook serve               Start the preview server
  patternbook list                List all catalog entries
  patternbook validate            Check catalog invariants

Command Aliases (for faster typing):
  render (r), serve (s), list (l), validate (v), watch (w)`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .patternbook.yml, can also use PATTERNBOOK_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// newLogger builds the logger commands share, honoring --log-level.
func newLogger() logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(viper.GetString("log-level")),
		Format: "text",
		Output: os.Stderr,
	})
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. PATTERNBOOK_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .patternbook.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("PATTERNBOOK_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".patternbook")
	}

	// Enable automatic environment variable binding with PATTERNBOOK_ prefix
	// Examples: PATTERNBOOK_SERVER_PORT, PATTERNBOOK_OUTPUT_PATH
	viper.SetEnvPrefix("PATTERNBOOK")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// If the file doesn't exist or has errors, Viper uses defaults
	// without failing, so a bare checkout still renders
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
