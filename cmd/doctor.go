package cmd

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/patternbook/patternbook/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose catalog and environment issues",
	Long: `Diagnose your patternbook setup and report problems before they bite:

- Configuration file presence and syntax
- Catalog source paths and file counts
- Output destination writability
- Preview server port availability

Examples:
  patternbook doctor                # Full diagnosis
  patternbook doctor --format json  # Output as JSON for tooling`,
	RunE: runDoctor,
}

var doctorFormat string

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().StringVar(&doctorFormat, "format", "text", "Output format (text, json)")
}

// DiagnosticResult represents the result of a diagnostic check
type DiagnosticResult struct {
	Name       string `json:"name"`
	Status     string `json:"status"` // "ok", "warning", "error"
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	var results []DiagnosticResult

	results = append(results, checkConfigFile())

	cfg, err := config.Load()
	if err != nil {
		results = append(results, DiagnosticResult{
			Name:       "configuration",
			Status:     "error",
			Message:    err.Error(),
			Suggestion: "fix .patternbook.yml or unset conflicting PATTERNBOOK_ variables",
		})
		return reportDiagnostics(results)
	}

	results = append(results, checkSourcePaths(cfg)...)
	results = append(results, checkOutputPath(cfg))
	results = append(results, checkPort(cfg))

	return reportDiagnostics(results)
}

// checkConfigFile verifies the raw config file parses as YAML before
// viper gets a chance to paper over it with defaults.
func checkConfigFile() DiagnosticResult {
	path := cfgFile
	if path == "" {
		path = ".patternbook.yml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DiagnosticResult{
			Name:       "config file",
			Status:     "warning",
			Message:    fmt.Sprintf("%s not found, using defaults", path),
			Suggestion: "run `patternbook init` to scaffold one",
		}
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return DiagnosticResult{
			Name:       "config file",
			Status:     "error",
			Message:    fmt.Sprintf("%s is not valid YAML: %v", path, err),
			Suggestion: "check indentation and quoting",
		}
	}

	return DiagnosticResult{
		Name:    "config file",
		Status:  "ok",
		Message: fmt.Sprintf("%s parsed", path),
	}
}

func checkSourcePaths(cfg *config.Config) []DiagnosticResult {
	var results []DiagnosticResult

	for _, path := range cfg.Catalog.SourcePaths {
		info, err := os.Stat(path)
		if err != nil {
			results = append(results, DiagnosticResult{
				Name:       "source path " + path,
				Status:     "error",
				Message:    "path does not exist",
				Suggestion: "create it or fix catalog.source_paths",
			})
			continue
		}

		count := 0
		if info.IsDir() {
			_ = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
				if err == nil && !fi.IsDir() {
					ext := strings.ToLower(filepath.Ext(p))
					if ext == ".yml" || ext == ".yaml" {
						count++
					}
				}
				return nil
			})
		} else {
			count = 1
		}

		status, message := "ok", fmt.Sprintf("%d catalog file(s)", count)
		if count == 0 {
			status, message = "warning", "no catalog files found"
		}
		results = append(results, DiagnosticResult{
			Name:    "source path " + path,
			Status:  status,
			Message: message,
		})
	}

	return results
}

func checkOutputPath(cfg *config.Config) DiagnosticResult {
	dir := filepath.Dir(cfg.Output.Path)
	if dir == "" {
		dir = "."
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return DiagnosticResult{
			Name:       "output path",
			Status:     "warning",
			Message:    fmt.Sprintf("directory %s does not exist yet", dir),
			Suggestion: "it will be created on the first render",
		}
	}

	return DiagnosticResult{
		Name:    "output path",
		Status:  "ok",
		Message: cfg.Output.Path,
	}
}

func checkPort(cfg *config.Config) DiagnosticResult {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	listener, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
	if err == nil {
		listener.Close()
		return DiagnosticResult{
			Name:       "preview port",
			Status:     "warning",
			Message:    fmt.Sprintf("%s is already in use", addr),
			Suggestion: "stop the other process or set server.port",
		}
	}

	return DiagnosticResult{
		Name:    "preview port",
		Status:  "ok",
		Message: addr + " is free",
	}
}

func reportDiagnostics(results []DiagnosticResult) error {
	if doctorFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, result := range results {
			fmt.Printf("[%s] %s: %s\n", strings.ToUpper(result.Status), result.Name, result.Message)
			if result.Suggestion != "" {
				fmt.Printf("        hint: %s\n", result.Suggestion)
			}
		}
	}

	for _, result := range results {
		if result.Status == "error" {
			return fmt.Errorf("doctor found blocking issues")
		}
	}
	return nil
}
