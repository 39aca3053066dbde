package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFilter(t *testing.T) {
	assert.True(t, CatalogFilter("catalog/principles.yml"))
	assert.True(t, CatalogFilter("catalog/patterns.YAML"))
	assert.False(t, CatalogFilter("catalog/readme.md"))
	assert.False(t, CatalogFilter("main.go"))
}

func TestNoGitFilter(t *testing.T) {
	assert.False(t, NoGitFilter(".git/objects/ab"))
	assert.True(t, NoGitFilter("catalog/patterns.yml"))
}

func TestNoHiddenFilter(t *testing.T) {
	assert.False(t, NoHiddenFilter("catalog/.draft.yml"))
	assert.True(t, NoHiddenFilter("catalog/patterns.yml"))
}

func TestValidatePathRejectsTraversal(t *testing.T) {
	_, err := validatePath("../outside")
	assert.Error(t, err)

	clean, err := validatePath("./catalog")
	require.NoError(t, err)
	assert.Equal(t, "catalog", clean)
}

func TestDebouncerGroupsEvents(t *testing.T) {
	d := &Debouncer{
		delay:   20 * time.Millisecond,
		events:  make(chan ChangeEvent, 100),
		output:  make(chan []ChangeEvent, 10),
		pending: make([]ChangeEvent, 0),
	}

	// Rapid changes to the same path collapse into one event
	for i := 0; i < 5; i++ {
		d.addEvent(ChangeEvent{Type: EventTypeModified, Path: "catalog/patterns.yml"})
	}
	d.addEvent(ChangeEvent{Type: EventTypeCreated, Path: "catalog/principles.yml"})

	select {
	case events := <-d.output:
		assert.Len(t, events, 2)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("debouncer never flushed")
	}
}

func TestFileWatcherDeliversCatalogChanges(t *testing.T) {
	tempDir := t.TempDir()

	fw, err := NewFileWatcher(30 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Stop()

	fw.AddFilter(CatalogFilter)

	var mu sync.Mutex
	var seen []string
	fw.AddHandler(func(events []ChangeEvent) error {
		mu.Lock()
		defer mu.Unlock()
		for _, ev := range events {
			seen = append(seen, filepath.Base(ev.Path))
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, fw.Start(ctx))
	require.NoError(t, fw.AddRecursive(tempDir))

	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "patterns.yml"), []byte("entries: []"), 0644))
	// A non-catalog file must be filtered out
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "notes.txt"), []byte("ignore"), 0644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, name := range seen {
			if name == "patterns.yml" {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.NotContains(t, seen, "notes.txt")
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "created", EventTypeCreated.String())
	assert.Equal(t, "modified", EventTypeModified.String())
	assert.Equal(t, "deleted", EventTypeDeleted.String())
	assert.Equal(t, "renamed", EventTypeRenamed.String())
}
