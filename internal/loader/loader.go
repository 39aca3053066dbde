// Package loader discovers catalog source files and turns them into
// registered catalog entries.
//
// The loader walks configured source paths for .yml/.yaml files,
// decodes each file's entry list, validates entries, and registers them
// with the catalog registry so change events reach watchers like the
// preview server. Files are visited in sorted path order and entries in
// document order, so a given source tree always produces the same
// catalog and therefore the same rendered document.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	pberrors "github.com/patternbook/patternbook/internal/errors"
	"github.com/patternbook/patternbook/internal/registry"
	"github.com/patternbook/patternbook/internal/types"
	"github.com/patternbook/patternbook/internal/validation"
)

// catalogFile is the on-disk shape of one catalog source file.
type catalogFile struct {
	Entries []types.CatalogEntry `yaml:"entries"`
}

// CatalogLoader scans source paths and feeds entries into the registry.
type CatalogLoader struct {
	registry  *registry.CatalogRegistry
	collector *pberrors.ErrorCollector
}

// NewCatalogLoader creates a new catalog loader
func NewCatalogLoader(reg *registry.CatalogRegistry) *CatalogLoader {
	return &CatalogLoader{
		registry:  reg,
		collector: pberrors.NewErrorCollector(),
	}
}

// Errors returns the collector holding per-file load failures from the
// most recent scan.
func (l *CatalogLoader) Errors() *pberrors.ErrorCollector {
	return l.collector
}

// LoadPaths scans every source path in order, skipping files that match
// an exclude pattern. A missing path is a load error for that path but
// does not stop the other paths from being scanned; the caller decides
// what to do with the collected errors.
func (l *CatalogLoader) LoadPaths(paths []string, excludePatterns []string) error {
	l.collector.Clear()

	for _, path := range paths {
		if err := l.loadPath(path, excludePatterns); err != nil {
			l.collector.Add(pberrors.LoadError{
				File:     path,
				Message:  err.Error(),
				Severity: pberrors.ErrorSeverityError,
			})
		}
	}

	if l.collector.HasErrors() {
		return fmt.Errorf("catalog scan finished with %d error(s)", len(l.collector.GetAllErrors()))
	}
	return nil
}

// loadPath scans one source path, which may be a single file or a
// directory tree.
func (l *CatalogLoader) loadPath(path string, excludePatterns []string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return l.LoadFile(path)
	}

	files, err := collectCatalogFiles(path, excludePatterns)
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := l.LoadFile(file); err != nil {
			l.collector.Add(pberrors.LoadError{
				File:     file,
				Message:  err.Error(),
				Severity: pberrors.ErrorSeverityError,
			})
		}
	}
	return nil
}

// LoadFile decodes one catalog source file and registers its entries.
func (l *CatalogLoader) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var file catalogFile
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(file.Entries) == 0 {
		return fmt.Errorf("%s defines no entries", path)
	}

	for i := range file.Entries {
		entry := file.Entries[i]
		entry.SourceFile = path

		if err := validation.ValidateEntry(&entry); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if _, exists := l.registry.Get(entry.Name); exists {
			return &pberrors.DuplicateNameError{Name: entry.Name}
		}

		l.registry.Register(&entry)
	}
	return nil
}

// collectCatalogFiles walks root and returns the catalog files beneath
// it in sorted order.
func collectCatalogFiles(root string, excludePatterns []string) ([]string, error) {
	var files []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if isExcluded(path, excludePatterns) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isCatalogFile(path) || isExcluded(path, excludePatterns) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// isCatalogFile reports whether path looks like a catalog source file.
func isCatalogFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}

// isExcluded matches path against exclude patterns on both the base
// name (glob) and the full path (substring).
func isExcluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := filepath.Match(pattern, filepath.Base(path)); err == nil && matched {
			return true
		}
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}
