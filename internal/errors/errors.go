// Package errors defines the catalog error taxonomy and a collector for
// aggregating load failures across catalog source files.
package errors

import (
	"fmt"
	"sync"
	"time"
)

// EmptyCatalogError indicates a render was requested for a catalog with
// no entries. The renderer produces no output in this case.
type EmptyCatalogError struct{}

func (e *EmptyCatalogError) Error() string {
	return "catalog has no entries to render"
}

// DuplicateNameError indicates two catalog entries share the same name,
// violating the catalog's uniqueness invariant.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate entry name %q in catalog", e.Name)
}

// RenderError indicates a specific entry could not be formatted. The
// whole render is aborted rather than emitting partial output.
type RenderError struct {
	EntryName string
	Reason    string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering entry %q: %s", e.EntryName, e.Reason)
}

// LoadError represents a failure to load one catalog source file.
type LoadError struct {
	File      string
	Message   string
	Severity  ErrorSeverity
	Timestamp time.Time
}

// ErrorSeverity represents the severity of a load error
type ErrorSeverity int

const (
	ErrorSeverityInfo ErrorSeverity = iota
	ErrorSeverityWarning
	ErrorSeverityError
	ErrorSeverityFatal
)

// String returns the string representation of the severity
func (s ErrorSeverity) String() string {
	switch s {
	case ErrorSeverityInfo:
		return "info"
	case ErrorSeverityWarning:
		return "warning"
	case ErrorSeverityError:
		return "error"
	case ErrorSeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error implements the error interface
func (le *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %s", le.File, le.Severity, le.Message)
}

// ErrorCollector collects load errors across catalog source files so a
// scan can report every broken file instead of stopping at the first.
type ErrorCollector struct {
	loadErrors []LoadError
	errors     []error
	mutex      sync.RWMutex
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		loadErrors: make([]LoadError, 0),
		errors:     make([]error, 0),
	}
}

// Add adds a load error to the collector
func (ec *ErrorCollector) Add(err LoadError) {
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	err.Timestamp = time.Now()
	ec.loadErrors = append(ec.loadErrors, err)
}

// AddError adds a general error to the collector
func (ec *ErrorCollector) AddError(err error) {
	if err == nil {
		return
	}
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.errors = append(ec.errors, err)
}

// GetErrors returns all collected load errors
func (ec *ErrorCollector) GetErrors() []LoadError {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	// Return a copy to avoid race conditions
	result := make([]LoadError, len(ec.loadErrors))
	copy(result, ec.loadErrors)
	return result
}

// GetAllErrors returns all collected errors (load and general)
func (ec *ErrorCollector) GetAllErrors() []error {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()

	allErrors := make([]error, 0, len(ec.loadErrors)+len(ec.errors))
	for i := range ec.loadErrors {
		allErrors = append(allErrors, &ec.loadErrors[i])
	}
	allErrors = append(allErrors, ec.errors...)

	return allErrors
}

// HasErrors returns true if there are any errors
func (ec *ErrorCollector) HasErrors() bool {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	return len(ec.loadErrors) > 0 || len(ec.errors) > 0
}

// Clear clears all errors
func (ec *ErrorCollector) Clear() {
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.loadErrors = ec.loadErrors[:0]
	ec.errors = ec.errors[:0]
}
