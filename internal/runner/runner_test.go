package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kutsjuice/weft/internal/literate"
	"github.com/kutsjuice/weft/internal/registry"
)

func lessonWithOutput(t *testing.T, name, output string) *registry.LessonInfo {
	t.Helper()

	source := "// Lesson.\npackage main\n\nfunc main() {}\n"
	if output != "" {
		source += "\n// Output:\n"
		for _, line := range splitLines(output) {
			source += "// " + line + "\n"
		}
	}

	lesson, err := literate.Parse("lessons/"+name+"/main.go", []byte(source))
	require.NoError(t, err)
	return &registry.LessonInfo{
		Name:     name,
		FilePath: lesson.FilePath,
		Lesson:   lesson,
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func TestNewRunnerRejectsEmptyCommand(t *testing.T) {
	_, err := NewRunner("   ")
	require.Error(t, err)
}

func TestCheckSkipsLessonsWithoutOutput(t *testing.T) {
	r, err := NewRunner("go run")
	require.NoError(t, err)

	result, err := r.Check(context.Background(), lessonWithOutput(t, "01-functions", ""))
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.True(t, result.Passed)
}

// scriptLesson stands in for a lesson whose "interpreter" is sh, letting
// the tests exercise the runner without a Go toolchain invocation.
func scriptLesson(t *testing.T, name, script, output string) *registry.LessonInfo {
	t.Helper()

	info := lessonWithOutput(t, name, output)
	path := filepath.Join(t.TempDir(), "lesson.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	info.FilePath = path
	return info
}

func TestCheckPassesOnMatchingOutput(t *testing.T) {
	r, err := NewRunner("sh")
	require.NoError(t, err)

	info := scriptLesson(t, "02-closures", "printf 'hello\\n'\n", "hello\n")
	result, err := r.Check(context.Background(), info)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.True(t, result.Passed)
	assert.Equal(t, "hello\n", result.Actual)
	assert.Empty(t, result.Diff())
}

func TestCheckFailsOnMismatch(t *testing.T) {
	r, err := NewRunner("sh")
	require.NoError(t, err)

	info := scriptLesson(t, "02-closures", "printf 'goodbye\\n'\n", "hello\n")
	result, err := r.Check(context.Background(), info)
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Diff(), "expected")
	assert.Contains(t, result.Diff(), "hello")
	assert.Contains(t, result.Diff(), "goodbye")
}

func TestCheckReportsExecutionFailure(t *testing.T) {
	r, err := NewRunner("sh")
	require.NoError(t, err)

	info := scriptLesson(t, "05-errors", "exit 3\n", "hello\n")
	_, err = r.Check(context.Background(), info)
	require.Error(t, err)
}

func TestCheckHonorsTimeout(t *testing.T) {
	r, err := NewRunner("sleep")
	require.NoError(t, err)
	r.WithTimeout(50 * time.Millisecond)

	info := lessonWithOutput(t, "03-loops", "never\n")
	info.FilePath = "5" // sleep 5

	_, err = r.Check(context.Background(), info)
	require.Error(t, err)
}
