package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patternbook/patternbook/internal/config"
	"github.com/patternbook/patternbook/internal/types"
	"github.com/patternbook/patternbook/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"v"},
	Short:   "Validate the catalog without rendering",
	Long: `Load all catalog source files and check the catalog invariants:
unique entry names, known sections, non-empty summaries, and
well-formed code examples. Exits non-zero when the catalog would not
render.

Examples:
  patternbook validate              # Check the configured catalog
  patternbook validate -q           # Only report failures`,
	RunE: runValidate,
}

var validateQuiet bool

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVarP(&validateQuiet, "quiet", "q", false, "Only report failures")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	catalog, err := loadCatalog(context.Background(), cfg)
	if err != nil {
		return err
	}

	if err := validation.ValidateCatalog(catalog); err != nil {
		return fmt.Errorf("catalog is invalid: %w", err)
	}

	if !validateQuiet {
		principles, patterns := 0, 0
		for _, entry := range catalog.Entries {
			switch entry.Section {
			case types.SectionPrinciple:
				principles++
			case types.SectionPattern:
				patterns++
			}
		}
		fmt.Printf("Catalog is valid: %d entries (%d principles, %d patterns)\n",
			len(catalog.Entries), principles, patterns)
	}
	return nil
}
