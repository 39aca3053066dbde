// Package registry maintains the set of catalog entries discovered by
// the loader and publishes change events to interested watchers.
package registry

import (
	"sync"
	"time"

	"github.com/patternbook/patternbook/internal/types"
)

// CatalogRegistry manages all discovered catalog entries. Unlike a plain
// map it preserves registration order, which the renderer relies on for
// reproducible output.
type CatalogRegistry struct {
	entries  map[string]*types.CatalogEntry
	order    []string
	title    string
	mutex    sync.RWMutex
	watchers []chan types.CatalogEvent
}

// NewCatalogRegistry creates a new catalog registry
func NewCatalogRegistry() *CatalogRegistry {
	return &CatalogRegistry{
		entries:  make(map[string]*types.CatalogEntry),
		order:    make([]string, 0),
		watchers: make([]chan types.CatalogEvent, 0),
	}
}

// SetTitle sets the document title carried into snapshots.
func (r *CatalogRegistry) SetTitle(title string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.title = title
}

// Register adds or updates an entry in the registry. A re-registered
// name keeps its original position in the catalog order.
func (r *CatalogRegistry) Register(entry *types.CatalogEntry) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	eventType := types.EventTypeAdded
	if _, exists := r.entries[entry.Name]; exists {
		eventType = types.EventTypeUpdated
	} else {
		r.order = append(r.order, entry.Name)
	}

	r.entries[entry.Name] = entry

	r.notify(types.CatalogEvent{
		Type:      eventType,
		Entry:     entry,
		Timestamp: time.Now(),
	})
}

// Get retrieves an entry by name
func (r *CatalogRegistry) Get(name string) (*types.CatalogEntry, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	entry, exists := r.entries[name]
	return entry, exists
}

// GetAll returns all registered entries in registration order.
func (r *CatalogRegistry) GetAll() []*types.CatalogEntry {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*types.CatalogEntry, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.entries[name])
	}
	return result
}

// Remove removes an entry from the registry
func (r *CatalogRegistry) Remove(name string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	entry, exists := r.entries[name]
	if !exists {
		return
	}

	delete(r.entries, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.notify(types.CatalogEvent{
		Type:      types.EventTypeRemoved,
		Entry:     entry,
		Timestamp: time.Now(),
	})
}

// Clear removes all entries without notifying watchers. Used when a
// watch cycle rebuilds the catalog from scratch.
func (r *CatalogRegistry) Clear() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.entries = make(map[string]*types.CatalogEntry)
	r.order = r.order[:0]
}

// Snapshot returns an immutable copy of the catalog in registration
// order. The renderer only ever sees snapshots, so registry mutation
// during discovery cannot leak into a render in progress.
func (r *CatalogRegistry) Snapshot() types.Catalog {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	entries := make([]types.CatalogEntry, 0, len(r.order))
	for _, name := range r.order {
		entries = append(entries, *r.entries[name])
	}
	return types.Catalog{Title: r.title, Entries: entries}
}

// Watch returns a channel that receives catalog events
func (r *CatalogRegistry) Watch() <-chan types.CatalogEvent {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ch := make(chan types.CatalogEvent, 100)
	r.watchers = append(r.watchers, ch)
	return ch
}

// UnWatch removes a watcher channel and closes it
func (r *CatalogRegistry) UnWatch(ch <-chan types.CatalogEvent) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, watcher := range r.watchers {
		if watcher == ch {
			close(watcher)
			r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
			break
		}
	}
}

// Count returns the number of registered entries
func (r *CatalogRegistry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.entries)
}

// notify sends an event to all watchers. Callers must hold the mutex.
func (r *CatalogRegistry) notify(event types.CatalogEvent) {
	for _, watcher := range r.watchers {
		select {
		case watcher <- event:
		default:
			// Skip if channel is full
		}
	}
}
