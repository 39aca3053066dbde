package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patternbook/patternbook/internal/types"
)

func entry(name string, section types.Section) *types.CatalogEntry {
	return &types.CatalogEntry{
		Name:    name,
		Section: section,
		Summary: "Summary for " + name + ".",
	}
}

func TestRegisterAndGet(t *testing.T) {
	reg := NewCatalogRegistry()
	reg.Register(entry("DRY", types.SectionPrinciple))

	got, ok := reg.Get("DRY")
	require.True(t, ok)
	assert.Equal(t, "DRY", got.Name)
	assert.Equal(t, 1, reg.Count())

	_, ok = reg.Get("KISS")
	assert.False(t, ok)
}

func TestGetAllPreservesInsertionOrder(t *testing.T) {
	reg := NewCatalogRegistry()
	names := []string{"Factory", "DRY", "Observer", "KISS", "Singleton"}
	for _, name := range names {
		reg.Register(entry(name, types.SectionPattern))
	}

	all := reg.GetAll()
	require.Len(t, all, len(names))
	for i, name := range names {
		assert.Equal(t, name, all[i].Name)
	}
}

func TestReRegisterKeepsPosition(t *testing.T) {
	reg := NewCatalogRegistry()
	reg.Register(entry("DRY", types.SectionPrinciple))
	reg.Register(entry("KISS", types.SectionPrinciple))

	updated := entry("DRY", types.SectionPrinciple)
	updated.Summary = "Updated summary."
	reg.Register(updated)

	all := reg.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, "DRY", all[0].Name)
	assert.Equal(t, "Updated summary.", all[0].Summary)
	assert.Equal(t, "KISS", all[1].Name)
}

func TestRemove(t *testing.T) {
	reg := NewCatalogRegistry()
	reg.Register(entry("DRY", types.SectionPrinciple))
	reg.Register(entry("KISS", types.SectionPrinciple))

	reg.Remove("DRY")

	assert.Equal(t, 1, reg.Count())
	all := reg.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, "KISS", all[0].Name)

	// Removing an unknown name is a no-op
	reg.Remove("YAGNI")
	assert.Equal(t, 1, reg.Count())
}

func TestSnapshotIsImmutableCopy(t *testing.T) {
	reg := NewCatalogRegistry()
	reg.SetTitle("Patterns")
	reg.Register(entry("DRY", types.SectionPrinciple))

	snapshot := reg.Snapshot()
	assert.Equal(t, "Patterns", snapshot.Title)
	require.Len(t, snapshot.Entries, 1)

	// Mutating the registry after the snapshot must not change it
	reg.Register(entry("KISS", types.SectionPrinciple))
	updated := entry("DRY", types.SectionPrinciple)
	updated.Summary = "Changed."
	reg.Register(updated)

	assert.Len(t, snapshot.Entries, 1)
	assert.Equal(t, "Summary for DRY.", snapshot.Entries[0].Summary)
}

func TestClear(t *testing.T) {
	reg := NewCatalogRegistry()
	reg.Register(entry("DRY", types.SectionPrinciple))
	reg.Register(entry("Factory", types.SectionPattern))

	reg.Clear()

	assert.Equal(t, 0, reg.Count())
	assert.Empty(t, reg.GetAll())

	// Registration after clear starts a fresh order
	reg.Register(entry("KISS", types.SectionPrinciple))
	all := reg.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, "KISS", all[0].Name)
}

func TestWatchReceivesEvents(t *testing.T) {
	reg := NewCatalogRegistry()
	ch := reg.Watch()
	defer reg.UnWatch(ch)

	reg.Register(entry("DRY", types.SectionPrinciple))
	event := <-ch
	assert.Equal(t, types.EventTypeAdded, event.Type)
	require.NotNil(t, event.Entry)
	assert.Equal(t, "DRY", event.Entry.Name)

	reg.Register(entry("DRY", types.SectionPrinciple))
	event = <-ch
	assert.Equal(t, types.EventTypeUpdated, event.Type)

	reg.Remove("DRY")
	event = <-ch
	assert.Equal(t, types.EventTypeRemoved, event.Type)
}
