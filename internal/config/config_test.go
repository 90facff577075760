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

	assert.Equal(t, []string{"./lessons"}, cfg.Lessons.Roots)
	assert.Equal(t, []string{"*_test.go", "*.bak"}, cfg.Lessons.ExcludePatterns)
	assert.Equal(t, "docs", cfg.Output.Dir)
	assert.True(t, cfg.Output.Footer)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, ".weft/cache", cfg.Build.CacheDir)
	assert.Equal(t, "go run", cfg.Build.RunCommand)
}

func TestLoadOverrides(t *testing.T) {
	resetViper(t)

	viper.Set("lessons.roots", []string{"./material"})
	viper.Set("lessons.exclude_patterns", []string{"*.draft.go"})
	viper.Set("output.dir", "site")
	viper.Set("output.footer", false)
	viper.Set("server.port", 3000)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"./material"}, cfg.Lessons.Roots)
	assert.Equal(t, []string{"*.draft.go"}, cfg.Lessons.ExcludePatterns)
	assert.Equal(t, "site", cfg.Output.Dir)
	assert.False(t, cfg.Output.Footer)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadRejectsBadPort(t *testing.T) {
	resetViper(t)
	viper.Set("server.port", 70000)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestLoadRejectsTraversalRoot(t *testing.T) {
	resetViper(t)
	viper.Set("lessons.roots", []string{"../outside"})

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "traversal")
}

func TestLoadRejectsDangerousHost(t *testing.T) {
	resetViper(t)
	viper.Set("server.host", "localhost;rm -rf /")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dangerous character")
}

func TestLoadRejectsAbsoluteCacheDir(t *testing.T) {
	resetViper(t)
	viper.Set("build.cache_dir", "/var/cache/weft")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relative path")
}
