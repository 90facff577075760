package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp mirrors t.Chdir(t.TempDir()) for toolchains older than Go 1.24,
// where testing.T has no Chdir method.
func chdirTemp(t *testing.T) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestGeneratorString(t *testing.T) {
	got := generatorString()
	assert.True(t, strings.HasPrefix(got, "weft "), "generator string should start with the tool name: %q", got)
}

func TestRunInitScaffoldsLesson(t *testing.T) {
	chdirTemp(t)

	err := runInit(initCmd, []string{"09-strings"})
	require.NoError(t, err)

	path := filepath.Join("lessons", "09-strings", "strings.go")
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(content), "// title: Strings")
	assert.Contains(t, string(content), "package main")
	assert.Contains(t, string(content), "// Output:")
}

func TestRunInitRejectsExistingLesson(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, runInit(initCmd, []string{"01-functions"}))

	err := runInit(initCmd, []string{"01-functions"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRunInitRejectsPathSeparators(t *testing.T) {
	chdirTemp(t)

	err := runInit(initCmd, []string{"../escape"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid lesson name")
}
