// Package validation checks catalog invariants before rendering: unique
// entry names, known sections, and well-formed code examples.
package validation

import (
	"fmt"
	"strings"

	pberrors "github.com/patternbook/patternbook/internal/errors"
	"github.com/patternbook/patternbook/internal/types"
)

// ValidateEntry checks a single entry for the fields every entry must
// carry. It is used by the loader so broken files are reported with the
// offending entry, not discovered at render time.
func ValidateEntry(entry *types.CatalogEntry) error {
	if strings.TrimSpace(entry.Name) == "" {
		return fmt.Errorf("entry has no name")
	}
	if !entry.Section.Valid() {
		return fmt.Errorf("entry %q has unknown section %q (want %q or %q)",
			entry.Name, entry.Section, types.SectionPrinciple, types.SectionPattern)
	}
	if strings.TrimSpace(entry.Summary) == "" {
		return fmt.Errorf("entry %q has no summary", entry.Name)
	}
	for i, ex := range entry.Examples {
		if strings.TrimSpace(ex.Code) == "" {
			return fmt.Errorf("entry %q example %d has no code", entry.Name, i+1)
		}
		if strings.TrimSpace(ex.Language) == "" {
			return fmt.Errorf("entry %q example %d has no language tag", entry.Name, i+1)
		}
	}
	return nil
}

// ValidateCatalog checks the whole-catalog invariants: at least one
// entry, and no two entries sharing a name.
func ValidateCatalog(catalog types.Catalog) error {
	if len(catalog.Entries) == 0 {
		return &pberrors.EmptyCatalogError{}
	}

	seen := make(map[string]struct{}, len(catalog.Entries))
	for i := range catalog.Entries {
		entry := &catalog.Entries[i]
		if _, dup := seen[entry.Name]; dup {
			return &pberrors.DuplicateNameError{Name: entry.Name}
		}
		seen[entry.Name] = struct{}{}

		if err := ValidateEntry(entry); err != nil {
			return err
		}
	}
	return nil
}
