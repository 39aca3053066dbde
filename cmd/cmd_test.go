package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRegistered(t *testing.T) {
	expected := []string{"render", "list", "validate", "serve", "watch", "init", "doctor", "version"}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "command %q not registered", name)
	}
}

func TestCommandAliases(t *testing.T) {
	aliases := map[string]string{
		"r": "render",
		"l": "list",
		"v": "validate",
		"s": "serve",
		"w": "watch",
		"i": "init",
	}

	for alias, name := range aliases {
		found := ""
		for _, c := range rootCmd.Commands() {
			for _, a := range c.Aliases {
				if a == alias {
					found = c.Name()
				}
			}
		}
		assert.Equal(t, name, found, "alias %q", alias)
	}
}

func TestValidateFormat(t *testing.T) {
	allowed := []string{"table", "json", "yaml"}

	assert.NoError(t, ValidateFormat("table", allowed))
	assert.NoError(t, ValidateFormat("JSON", allowed))

	err := ValidateFormat("jsn", allowed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json")

	err = ValidateFormat("xml", allowed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allowed")
}

func TestClosestMatch(t *testing.T) {
	allowed := []string{"table", "json", "yaml"}
	assert.Equal(t, "yaml", closestMatch("yam", allowed))
	assert.Equal(t, "table", closestMatch("tab", allowed))
	assert.Equal(t, "", closestMatch("x", allowed))
}

func TestRunInitScaffolds(t *testing.T) {
	dir := t.TempDir()

	initForce = false
	require.NoError(t, runInit(initCmd, []string{dir}))

	for _, rel := range []string{".patternbook.yml", "catalog/principles.yml", "catalog/patterns.yml"} {
		_, err := os.Stat(filepath.Join(dir, rel))
		assert.NoError(t, err, "missing %s", rel)
	}

	// Re-running without --force refuses to clobber
	err := runInit(initCmd, []string{dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	initForce = true
	defer func() { initForce = false }()
	assert.NoError(t, runInit(initCmd, []string{dir}))
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "PATTERNS.md")

	require.NoError(t, writeAtomic(path, "# Pattern Catalog\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Pattern Catalog\n", string(data))

	// Overwrite keeps the file consistent
	require.NoError(t, writeAtomic(path, "updated"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "updated", string(data))

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
