package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"./catalog"}, cfg.Catalog.SourcePaths)
	assert.Equal(t, "Pattern Catalog", cfg.Output.Title)
	assert.Equal(t, "PATTERNS.md", cfg.Output.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.False(t, cfg.Development.HotReload)
}

func TestLoadFromViperValues(t *testing.T) {
	resetViper(t)

	viper.Set("catalog.source_paths", []string{"./docs/catalog", "./extra"})
	viper.Set("catalog.exclude_patterns", []string{"draft-*"})
	viper.Set("output.title", "Principios y Patrones")
	viper.Set("output.path", "docs/patterns.md")
	viper.Set("server.port", 3000)
	viper.Set("development.hot_reload", true)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"./docs/catalog", "./extra"}, cfg.Catalog.SourcePaths)
	assert.Equal(t, []string{"draft-*"}, cfg.Catalog.ExcludePatterns)
	assert.Equal(t, "Principios y Patrones", cfg.Output.Title)
	assert.Equal(t, "docs/patterns.md", cfg.Output.Path)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.True(t, cfg.Development.HotReload)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	resetViper(t)

	viper.Set("server.port", 70000)

	_, err := Load()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "server.port", verr.Field)
}

func TestLoadRejectsTraversalSourcePath(t *testing.T) {
	resetViper(t)

	viper.Set("catalog.source_paths", []string{"../../etc"})

	_, err := Load()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "catalog.source_paths", verr.Field)
}

func TestIsValidSourcePath(t *testing.T) {
	testCases := []struct {
		path  string
		valid bool
	}{
		{"./catalog", true},
		{"catalog", true},
		{"docs/catalog", true},
		{".", true},
		{"", false},
		{"..", false},
		{"../outside", false},
		{"bad\x00path", false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.valid, isValidSourcePath(tc.path), "path: %q", tc.path)
	}
}
