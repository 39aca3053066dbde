package errors

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "catalog has no entries to render", (&EmptyCatalogError{}).Error())
	assert.Equal(t, `duplicate entry name "DRY" in catalog`, (&DuplicateNameError{Name: "DRY"}).Error())
	assert.Equal(t, `rendering entry "Factory": example has no code`,
		(&RenderError{EntryName: "Factory", Reason: "example has no code"}).Error())
}

func TestLoadErrorFormat(t *testing.T) {
	le := &LoadError{File: "catalog/broken.yml", Message: "bad yaml", Severity: ErrorSeverityError}
	assert.Equal(t, "catalog/broken.yml: error: bad yaml", le.Error())
}

func TestErrorSeverityString(t *testing.T) {
	assert.Equal(t, "info", ErrorSeverityInfo.String())
	assert.Equal(t, "warning", ErrorSeverityWarning.String())
	assert.Equal(t, "error", ErrorSeverityError.String())
	assert.Equal(t, "fatal", ErrorSeverityFatal.String())
	assert.Equal(t, "unknown", ErrorSeverity(42).String())
}

func TestErrorCollector(t *testing.T) {
	ec := NewErrorCollector()
	assert.False(t, ec.HasErrors())

	ec.Add(LoadError{File: "a.yml", Message: "broken", Severity: ErrorSeverityError})
	ec.AddError(fmt.Errorf("general failure"))
	ec.AddError(nil)

	assert.True(t, ec.HasErrors())
	assert.Len(t, ec.GetErrors(), 1)
	assert.Len(t, ec.GetAllErrors(), 2)

	// Timestamps are stamped on Add
	require.False(t, ec.GetErrors()[0].Timestamp.IsZero())

	ec.Clear()
	assert.False(t, ec.HasErrors())
	assert.Empty(t, ec.GetAllErrors())
}

func TestErrorCollectorConcurrent(t *testing.T) {
	ec := NewErrorCollector()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ec.Add(LoadError{File: fmt.Sprintf("f%d.yml", i), Message: "x", Severity: ErrorSeverityWarning})
		}(i)
	}
	wg.Wait()

	assert.Len(t, ec.GetErrors(), 10)
}
