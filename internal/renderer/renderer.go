// Package renderer turns a catalog into a single Markdown document.
//
// Rendering is a pure function of the catalog value: the same catalog
// always produces byte-identical output, entries render in catalog
// order within their section, and principles always precede patterns.
// A malformed entry aborts the whole render rather than emitting a
// partial document.
package renderer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	pberrors "github.com/patternbook/patternbook/internal/errors"
	"github.com/patternbook/patternbook/internal/types"
)

// DefaultTitle is used when the catalog carries no document title.
const DefaultTitle = "Pattern Catalog"

// entrySeparator keeps visual parity between entries regardless of
// their content length.
const entrySeparator = "---"

// sectionOrder fixes the section sequence of the rendered document.
var sectionOrder = []types.Section{types.SectionPrinciple, types.SectionPattern}

// DocumentRenderer renders catalogs into Markdown documents.
type DocumentRenderer struct {
	titler cases.Caser
}

// NewDocumentRenderer creates a new document renderer
func NewDocumentRenderer() *DocumentRenderer {
	return &DocumentRenderer{
		titler: cases.Title(language.English),
	}
}

// Render produces the full Markdown document for catalog. It fails with
// EmptyCatalogError when the catalog has no entries, DuplicateNameError
// when two entries share a name, and RenderError when a specific entry
// cannot be formatted. On error no output is produced.
func (r *DocumentRenderer) Render(catalog types.Catalog) (string, error) {
	if len(catalog.Entries) == 0 {
		return "", &pberrors.EmptyCatalogError{}
	}

	seen := make(map[string]struct{}, len(catalog.Entries))
	for i := range catalog.Entries {
		name := catalog.Entries[i].Name
		if _, dup := seen[name]; dup {
			return "", &pberrors.DuplicateNameError{Name: name}
		}
		seen[name] = struct{}{}
	}

	title := catalog.Title
	if title == "" {
		title = DefaultTitle
	}

	var b strings.Builder
	b.WriteString("# " + title + "\n")

	for _, section := range sectionOrder {
		if err := r.renderSection(&b, catalog, section); err != nil {
			return "", err
		}
	}

	r.renderSummary(&b, catalog)

	return b.String(), nil
}

// renderSection emits the heading and entries for one section. Sections
// with no entries are omitted entirely.
func (r *DocumentRenderer) renderSection(b *strings.Builder, catalog types.Catalog, section types.Section) error {
	var members []*types.CatalogEntry
	for i := range catalog.Entries {
		if catalog.Entries[i].Section == section {
			members = append(members, &catalog.Entries[i])
		}
	}
	if len(members) == 0 {
		return nil
	}

	b.WriteString("\n## " + r.titler.String(section.Plural()) + "\n")

	for i, entry := range members {
		if i > 0 {
			b.WriteString("\n" + entrySeparator + "\n")
		}
		if err := r.renderEntry(b, entry); err != nil {
			return err
		}
	}
	return nil
}

// renderEntry emits one entry: subheading, summary paragraph,
// advantages bullets (omitted when empty), and code examples in order.
func (r *DocumentRenderer) renderEntry(b *strings.Builder, entry *types.CatalogEntry) error {
	b.WriteString("\n### " + entry.Name + "\n")
	b.WriteString("\n" + strings.TrimSpace(entry.Summary) + "\n")

	if len(entry.Advantages) > 0 {
		b.WriteString("\n")
		for _, adv := range entry.Advantages {
			b.WriteString("- " + adv + "\n")
		}
	}

	for _, example := range entry.Examples {
		if err := r.renderExample(b, entry.Name, example); err != nil {
			return err
		}
	}
	return nil
}

// renderExample emits one captioned, language-tagged fenced code block.
func (r *DocumentRenderer) renderExample(b *strings.Builder, entryName string, example types.CodeExample) error {
	if strings.TrimSpace(example.Code) == "" {
		return &pberrors.RenderError{EntryName: entryName, Reason: "example has no code"}
	}
	if strings.TrimSpace(example.Language) == "" {
		return &pberrors.RenderError{EntryName: entryName, Reason: "example has no language tag"}
	}

	if example.Caption != "" {
		b.WriteString("\n**" + example.Caption + "** (" + r.titler.String(example.Language) + ")\n")
	}

	b.WriteString("\n```" + strings.ToLower(example.Language) + "\n")
	b.WriteString(example.Code)
	if !strings.HasSuffix(example.Code, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return nil
}

// renderSummary emits the trailing summary: one bullet per entry in
// original catalog order, regardless of section.
func (r *DocumentRenderer) renderSummary(b *strings.Builder, catalog types.Catalog) {
	b.WriteString("\n## Summary\n\n")
	for i := range catalog.Entries {
		entry := &catalog.Entries[i]
		b.WriteString("- " + entry.Name + ": " + firstClause(entry.Summary) + "\n")
	}
}

// firstClause returns the summary text up to and including the first
// period, or the whole summary when it contains none.
func firstClause(summary string) string {
	s := strings.Join(strings.Fields(summary), " ")
	if idx := strings.Index(s, "."); idx >= 0 {
		return s[:idx+1]
	}
	return s
}
