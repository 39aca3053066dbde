package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/patternbook/patternbook/internal/config"
	"github.com/patternbook/patternbook/internal/loader"
	"github.com/patternbook/patternbook/internal/registry"
	"github.com/patternbook/patternbook/internal/renderer"
	"github.com/patternbook/patternbook/internal/types"
)

var renderCmd = &cobra.Command{
	Use:     "render",
	Aliases: []string{"r"},
	Short:   "Render the catalog into a Markdown document",
	Long: `Load all catalog source files, validate the catalog invariants, and
render a single Markdown document. Rendering is deterministic: the same
catalog always produces byte-identical output.

Examples:
  patternbook render                  # Write to the configured output path
  patternbook render --stdout         # Print the document instead
  patternbook render -o docs/p.md     # Write to an explicit file`,
	RunE: runRender,
}

var (
	renderStdout bool
	renderOutput string
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().BoolVar(&renderStdout, "stdout", false, "Print the document to stdout instead of writing a file")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (overrides output.path from config)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger()
	ctx := context.Background()

	catalog, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	document, err := renderer.NewDocumentRenderer().Render(catalog)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if renderStdout {
		fmt.Print(document)
		return nil
	}

	outputPath := cfg.Output.Path
	if renderOutput != "" {
		outputPath = renderOutput
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(document), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	logger.Info(ctx, "document rendered", "path", outputPath, "entries", len(catalog.Entries))
	return nil
}

// loadCatalog runs a full discovery pass and returns the catalog
// snapshot. Load failures are printed per file before returning the
// scan error, so a broken tree reports every broken file at once.
func loadCatalog(ctx context.Context, cfg *config.Config) (types.Catalog, error) {
	reg := registry.NewCatalogRegistry()
	reg.SetTitle(cfg.Output.Title)

	l := loader.NewCatalogLoader(reg)
	if err := l.LoadPaths(cfg.Catalog.SourcePaths, cfg.Catalog.ExcludePatterns); err != nil {
		for _, loadErr := range l.Errors().GetAllErrors() {
			fmt.Fprintf(os.Stderr, "  %v\n", loadErr)
		}
		return types.Catalog{}, err
	}

	return reg.Snapshot(), nil
}
