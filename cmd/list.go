package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/patternbook/patternbook/internal/config"
	"github.com/patternbook/patternbook/internal/types"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List all catalog entries",
	Long: `List all discovered catalog entries with their metadata.
Shows entry names, sections, source files, and optionally examples.

Examples:
  patternbook list                  # List entries in table format
  patternbook list -f json          # Output as JSON
  patternbook list --format yaml    # Output as YAML
  patternbook list -e               # Include example counts`,
	RunE: runList,
}

var (
	listFlags        *StandardFlags
	listWithExamples bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listFlags = AddStandardFlags(listCmd, "output")
	listCmd.Flags().
		BoolVarP(&listWithExamples, "with-examples", "e", false, "Include example captions per entry")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := ValidateFormat(listFlags.Format, []string{"table", "json", "yaml"}); err != nil {
		return err
	}

	catalog, err := loadCatalog(context.Background(), cfg)
	if err != nil {
		return err
	}

	if len(catalog.Entries) == 0 {
		fmt.Println("No catalog entries found.")
		return nil
	}

	switch strings.ToLower(listFlags.Format) {
	case "json":
		return outputListJSON(catalog.Entries)
	case "yaml":
		return outputListYAML(catalog.Entries)
	default:
		return outputListTable(catalog.Entries)
	}
}

// listItem is the serialization shape shared by the JSON and YAML outputs.
type listItem struct {
	Name     string   `json:"name" yaml:"name"`
	Section  string   `json:"section" yaml:"section"`
	Summary  string   `json:"summary" yaml:"summary"`
	Source   string   `json:"source_file" yaml:"source_file"`
	Examples []string `json:"examples,omitempty" yaml:"examples,omitempty"`
}

func listItems(entries []types.CatalogEntry) []listItem {
	items := make([]listItem, len(entries))
	for i, entry := range entries {
		item := listItem{
			Name:    entry.Name,
			Section: string(entry.Section),
			Summary: entry.Summary,
			Source:  entry.SourceFile,
		}
		if listWithExamples {
			for _, ex := range entry.Examples {
				item.Examples = append(item.Examples, ex.Caption)
			}
		}
		items[i] = item
	}
	return items
}

func outputListJSON(entries []types.CatalogEntry) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(listItems(entries))
}

func outputListYAML(entries []types.CatalogEntry) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	return encoder.Encode(listItems(entries))
}

func outputListTable(entries []types.CatalogEntry) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	header := "NAME\tSECTION\tSOURCE"
	if listWithExamples {
		header += "\tEXAMPLES"
	}
	fmt.Fprintln(w, header)

	for _, entry := range entries {
		row := fmt.Sprintf("%s\t%s\t%s", entry.Name, entry.Section, entry.SourceFile)
		if listWithExamples {
			var captions []string
			for _, ex := range entry.Examples {
				captions = append(captions, ex.Caption)
			}
			row += "\t" + strings.Join(captions, ", ")
		}
		fmt.Fprintln(w, row)
	}

	fmt.Fprintf(w, "\nTotal: %d entries\n", len(entries))
	return nil
}
