//go:build property

package literate

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestLiterateProperties validates structural properties of the lesson parser
func TestLiterateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(2718)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	identifier := gen.RegexMatch(`[a-zA-Z][a-zA-Z0-9 ]{0,40}`)

	// Property: prose written as top-level comments survives a parse intact
	properties.Property("prose round-trips through the parser", prop.ForAll(
		func(lines []string) bool {
			if len(lines) == 0 {
				return true
			}

			var sb strings.Builder
			for _, line := range lines {
				sb.WriteString("// ")
				sb.WriteString(line)
				sb.WriteByte('\n')
			}
			sb.WriteString("package main\n")

			lesson, err := Parse("lessons/99-prop/prop.go", []byte(sb.String()))
			if err != nil {
				return false
			}
			if len(lesson.Segments) != 2 {
				return false
			}
			if lesson.Segments[0].Kind != SegmentProse {
				return false
			}
			if len(lesson.Segments[0].Lines) != len(lines) {
				return false
			}
			for i, line := range lines {
				if lesson.Segments[0].Lines[i] != line {
					return false
				}
			}
			return lesson.Segments[1].Kind == SegmentCode
		},
		gen.SliceOf(identifier),
	))

	// Property: code is never reordered or rewritten by the parser
	properties.Property("code lines are preserved verbatim", prop.ForAll(
		func(lines []string) bool {
			var sb strings.Builder
			sb.WriteString("package main\n")
			for _, line := range lines {
				sb.WriteString("var _ = \"")
				sb.WriteString(line)
				sb.WriteString("\"\n")
			}

			lesson, err := Parse("lessons/99-prop/prop.go", []byte(sb.String()))
			if err != nil {
				return false
			}
			if len(lesson.Segments) != 1 || lesson.Segments[0].Kind != SegmentCode {
				return false
			}
			return len(lesson.Segments[0].Lines) == len(lines)+1
		},
		gen.SliceOf(identifier),
	))

	properties.TestingRun(t)
}
