// Package types provides common type definitions used throughout the patternbook CLI.
// This package contains shared types to avoid circular dependencies between packages.
package types

import "time"

// Section identifies which part of the catalog an entry belongs to.
// A catalog has exactly two sections, rendered in a fixed order:
// principles first, then patterns.
type Section string

const (
	SectionPrinciple Section = "principle"
	SectionPattern   Section = "pattern"
)

// Valid reports whether s is one of the known sections.
func (s Section) Valid() bool {
	return s == SectionPrinciple || s == SectionPattern
}

// Plural returns the section's plural label used for section headings.
func (s Section) Plural() string {
	switch s {
	case SectionPrinciple:
		return "principles"
	case SectionPattern:
		return "patterns"
	default:
		return string(s)
	}
}

// CodeExample is one illustrative snippet attached to a catalog entry.
type CodeExample struct {
	// Caption is the short human-readable label shown above the snippet
	Caption string `yaml:"caption"`
	// Language is the syntax tag for the fenced code block (e.g., "javascript")
	Language string `yaml:"language"`
	// Code is the snippet body, rendered verbatim
	Code string `yaml:"code"`
}

// CatalogEntry is one principle or pattern and its explanatory content.
type CatalogEntry struct {
	// Name is the entry identifier (e.g., "Factory Pattern"), unique per catalog
	Name string `yaml:"name"`
	// Section places the entry under principles or patterns
	Section Section `yaml:"section"`
	// Summary is a one-paragraph description of the principle or pattern
	Summary string `yaml:"summary"`
	// Advantages lists short selling points, rendered as bullets (may be empty)
	Advantages []string `yaml:"advantages"`
	// Examples holds the entry's code examples in authoring order (may be empty)
	Examples []CodeExample `yaml:"examples"`
	// SourceFile is the file the entry was loaded from, for diagnostics
	SourceFile string `yaml:"-"`
}

// Catalog is the ordered collection of entries handed to the renderer.
// Insertion order is preserved on render; the value is treated as
// immutable once constructed.
type Catalog struct {
	// Title is the document title for the rendered output
	Title string
	// Entries holds all catalog entries in insertion order
	Entries []CatalogEntry
}

// EventType represents the type of catalog change event.
type EventType string

const (
	EventTypeAdded   EventType = "added"
	EventTypeUpdated EventType = "updated"
	EventTypeRemoved EventType = "removed"
)

// CatalogEvent represents a change in the catalog registry, used for
// real-time notifications to watchers like the preview server.
type CatalogEvent struct {
	// Type indicates the kind of change (added, updated, removed)
	Type EventType
	// Entry contains the entry information (may be nil for removed events)
	Entry *CatalogEntry
	// Timestamp records when the event occurred for ordering and filtering
	Timestamp time.Time
}
