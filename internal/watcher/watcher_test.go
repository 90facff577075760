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

func TestNewFileWatcher(t *testing.T) {
	fw, err := NewFileWatcher(50 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Stop()

	assert.NotNil(t, fw)
}

func TestAddPathRejectsTraversal(t *testing.T) {
	fw, err := NewFileWatcher(50 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Stop()

	err = fw.AddPath("../outside")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "traversal")
}

func TestWatcherDebouncesChanges(t *testing.T) {
	tempDir := t.TempDir()
	lessonFile := filepath.Join(tempDir, "loops.go")
	require.NoError(t, os.WriteFile(lessonFile, []byte("package main\n"), 0644))

	fw, err := NewFileWatcher(100 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Stop()

	var mu sync.Mutex
	var batches int
	var total int
	fw.AddFilter(LessonFilter)
	fw.AddHandler(func(events []ChangeEvent) error {
		mu.Lock()
		defer mu.Unlock()
		batches++
		total += len(events)
		return nil
	})

	require.NoError(t, fw.AddRecursive(tempDir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, fw.Start(ctx))
	time.Sleep(50 * time.Millisecond)

	// Rapid writes to the same file should collapse into one batch with one
	// deduplicated event
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(lessonFile, []byte("package main\n// edit\n"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(400 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, batches, "rapid writes collapse into one batch")
	assert.Equal(t, 1, total, "events deduplicated by path")
}

func TestWatcherIgnoresFilteredFiles(t *testing.T) {
	tempDir := t.TempDir()

	fw, err := NewFileWatcher(50 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Stop()

	var mu sync.Mutex
	var seen []string
	fw.AddFilter(LessonFilter)
	fw.AddFilter(NoTestFilter)
	fw.AddHandler(func(events []ChangeEvent) error {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range events {
			seen = append(seen, filepath.Base(e.Path))
		}
		return nil
	})

	require.NoError(t, fw.AddRecursive(tempDir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, fw.Start(ctx))
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "notes.md"), []byte("notes"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "loops_test.go"), []byte("package main\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "loops.go"), []byte("package main\n"), 0644))

	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"loops.go"}, seen)
}

func TestFilters(t *testing.T) {
	assert.True(t, LessonFilter("lessons/03-loops/loops.go"))
	assert.False(t, LessonFilter("lessons/03-loops/notes.md"))

	assert.True(t, NoTestFilter("lessons/03-loops/loops.go"))
	assert.False(t, NoTestFilter("lessons/03-loops/loops_test.go"))

	assert.True(t, NoGitFilter("lessons/03-loops/loops.go"))
	assert.False(t, NoGitFilter(".git/config"))

	outFilter := NoOutputFilter("docs")
	assert.False(t, outFilter("docs/03-loops/loops.md"))
	assert.True(t, outFilter("lessons/03-loops/loops.go"))
}
