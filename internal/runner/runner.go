// Package runner executes lesson files and verifies their recorded output.
//
// Every lesson may end with an "// Output:" block holding the text the
// snippet prints. The runner executes the lesson (with `go run` by default;
// the command is injectable so tests can substitute a cheap binary),
// captures stdout, and compares it byte for byte against the recorded
// block. This is the one testable property lesson content has: the examples
// must print exactly what the prose claims.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/kutsjuice/weft/internal/registry"
)

// DefaultTimeout bounds a single lesson execution.
const DefaultTimeout = 30 * time.Second

// Runner executes lessons and checks their output.
type Runner struct {
	command []string
	timeout time.Duration
}

// CheckResult is the outcome of checking one lesson.
type CheckResult struct {
	Lesson   string
	Skipped  bool // no output block recorded
	Passed   bool
	Expected string
	Actual   string
	Stderr   string
}

// NewRunner creates a runner. The command string is split on whitespace and
// the lesson path is appended on execution, so "go run" becomes
// `go run <lesson.go>`.
func NewRunner(command string) (*Runner, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty run command")
	}
	return &Runner{
		command: fields,
		timeout: DefaultTimeout,
	}, nil
}

// WithTimeout overrides the per-lesson execution timeout.
func (r *Runner) WithTimeout(timeout time.Duration) *Runner {
	r.timeout = timeout
	return r
}

// Check executes a lesson and compares its stdout against the recorded
// output block. Lessons without an output block are reported as skipped.
// Execution failures surface as errors; mismatches do not.
func (r *Runner) Check(ctx context.Context, info *registry.LessonInfo) (*CheckResult, error) {
	result := &CheckResult{Lesson: info.Name}

	if !info.Lesson.HasOutput() {
		result.Skipped = true
		result.Passed = true
		return result, nil
	}
	result.Expected = info.Lesson.Output()

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := append(append([]string(nil), r.command[1:]...), info.FilePath)
	cmd := exec.CommandContext(runCtx, r.command[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		result.Stderr = stderr.String()
		return result, fmt.Errorf("running %s: %w", info.FilePath, err)
	}

	result.Actual = stdout.String()
	result.Stderr = stderr.String()
	result.Passed = result.Actual == result.Expected

	return result, nil
}

// Diff renders a short mismatch report for a failed check.
func (cr *CheckResult) Diff() string {
	if cr.Passed {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("--- expected\n")
	sb.WriteString(indent(cr.Expected))
	sb.WriteString("+++ actual\n")
	sb.WriteString(indent(cr.Actual))
	return sb.String()
}

func indent(s string) string {
	if s == "" {
		return "\t(empty)\n"
	}
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		sb.WriteString("\t")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}
