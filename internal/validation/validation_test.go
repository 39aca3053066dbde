package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pberrors "github.com/patternbook/patternbook/internal/errors"
	"github.com/patternbook/patternbook/internal/types"
)

func validEntry() *types.CatalogEntry {
	return &types.CatalogEntry{
		Name:    "Strategy",
		Section: types.SectionPattern,
		Summary: "Swaps algorithms behind a common interface.",
		Examples: []types.CodeExample{
			{Caption: "Sorting", Language: "javascript", Code: "sorter.use(quickSort);"},
		},
	}
}

func TestValidateEntryAcceptsValid(t *testing.T) {
	assert.NoError(t, ValidateEntry(validEntry()))
}

func TestValidateEntryRejectsMissingName(t *testing.T) {
	entry := validEntry()
	entry.Name = "  "
	assert.Error(t, ValidateEntry(entry))
}

func TestValidateEntryRejectsUnknownSection(t *testing.T) {
	entry := validEntry()
	entry.Section = "antipattern"
	err := ValidateEntry(entry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "section")
}

func TestValidateEntryRejectsEmptySummary(t *testing.T) {
	entry := validEntry()
	entry.Summary = ""
	assert.Error(t, ValidateEntry(entry))
}

func TestValidateEntryRejectsBrokenExample(t *testing.T) {
	entry := validEntry()
	entry.Examples[0].Code = ""
	assert.Error(t, ValidateEntry(entry))

	entry = validEntry()
	entry.Examples[0].Language = "\t"
	assert.Error(t, ValidateEntry(entry))
}

func TestValidateCatalogEmpty(t *testing.T) {
	err := ValidateCatalog(types.Catalog{})
	var emptyErr *pberrors.EmptyCatalogError
	require.ErrorAs(t, err, &emptyErr)
}

func TestValidateCatalogDuplicateNames(t *testing.T) {
	catalog := types.Catalog{
		Entries: []types.CatalogEntry{*validEntry(), *validEntry()},
	}
	err := ValidateCatalog(catalog)

	var dupErr *pberrors.DuplicateNameError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "Strategy", dupErr.Name)
}

func TestValidateCatalogValid(t *testing.T) {
	catalog := types.Catalog{
		Entries: []types.CatalogEntry{
			{Name: "DRY", Section: types.SectionPrinciple, Summary: "Avoid duplication."},
			*validEntry(),
		},
	}
	assert.NoError(t, ValidateCatalog(catalog))
}
