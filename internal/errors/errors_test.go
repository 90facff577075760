package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildErrorFormat(t *testing.T) {
	err := New("01-functions", "lessons/01-functions/functions.go", 12, ErrorSeverityError, "unterminated front matter")
	assert.Equal(t, "lessons/01-functions/functions.go:12: error: unterminated front matter", err.Error())

	noLine := New("01-functions", "lessons/01-functions/functions.go", 0, ErrorSeverityWarning, "missing title")
	assert.Equal(t, "lessons/01-functions/functions.go: warning: missing title", noLine.Error())
}

func TestErrorCollector(t *testing.T) {
	ec := NewErrorCollector()
	assert.False(t, ec.HasErrors())
	assert.Equal(t, 0, ec.Count())

	ec.Add(*New("02-closures", "closures.go", 3, ErrorSeverityError, "bad code fence"))
	ec.AddError(errors.New("output dir not writable"))
	ec.AddError(nil)

	assert.True(t, ec.HasErrors())
	assert.Equal(t, 2, ec.Count())
	assert.Len(t, ec.GetErrors(), 1)
	assert.False(t, ec.GetErrors()[0].Timestamp.IsZero())

	summary := ec.Summary()
	assert.Contains(t, summary, "closures.go:3: error: bad code fence")
	assert.Contains(t, summary, "output dir not writable")

	ec.Clear()
	assert.False(t, ec.HasErrors())
	assert.Empty(t, ec.Summary())
}
