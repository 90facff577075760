// Package renderer turns parsed lessons into Markdown documents and, for
// the preview server, into HTML.
//
// Markdown assembly is deliberately mechanical: the lesson title becomes the
// top heading, prose passes through untouched (it already is Markdown), code
// segments become fenced Go blocks, and the recorded output becomes a plain
// fenced block. Every document ends with a generated-by footer so rendered
// files are recognizable as build artifacts.
package renderer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/kutsjuice/weft/internal/literate"
)

// LessonRenderer renders lessons to Markdown and HTML.
//
// The renderer is stateless apart from its configuration, so a single
// instance can be shared across the build pipeline and the preview server.
type LessonRenderer struct {
	generator string
	footer    bool
	engine    goldmark.Markdown
}

// NewLessonRenderer creates a renderer. The generator string (typically
// "weft <version>") is embedded in the footer of every rendered document.
func NewLessonRenderer(generator string, footer bool) *LessonRenderer {
	return &LessonRenderer{
		generator: generator,
		footer:    footer,
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Markdown renders a lesson to its Markdown document.
func (r *LessonRenderer) Markdown(lesson *literate.Lesson) []byte {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(lesson.Meta.Title)
	sb.WriteString("\n\n")

	if lesson.Meta.Summary != "" {
		sb.WriteString(lesson.Meta.Summary)
		sb.WriteString("\n\n")
	}

	for _, seg := range lesson.Segments {
		switch seg.Kind {
		case literate.SegmentProse:
			for _, line := range seg.Lines {
				sb.WriteString(line)
				sb.WriteByte('\n')
			}
			sb.WriteByte('\n')

		case literate.SegmentCode:
			sb.WriteString("```go\n")
			for _, line := range seg.Lines {
				sb.WriteString(line)
				sb.WriteByte('\n')
			}
			sb.WriteString("```\n\n")

		case literate.SegmentOutput:
			sb.WriteString("```\n")
			for _, line := range seg.Lines {
				sb.WriteString(line)
				sb.WriteByte('\n')
			}
			sb.WriteString("```\n\n")
		}
	}

	if r.footer {
		sb.WriteString("---\n\n")
		sb.WriteString(fmt.Sprintf("*This page was generated by %s. Do not edit by hand.*\n", r.generator))
	}

	return []byte(strings.TrimRight(sb.String(), "\n") + "\n")
}

// HTML renders a lesson to an HTML fragment via goldmark.
func (r *LessonRenderer) HTML(lesson *literate.Lesson) ([]byte, error) {
	markdown := r.Markdown(lesson)

	var buf bytes.Buffer
	if err := r.engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", lesson.Name, err)
	}
	return buf.Bytes(), nil
}

// OutputPath returns the destination of a lesson's Markdown document inside
// the output directory, mirroring the per-lesson source layout.
func OutputPath(outputDir string, lesson *literate.Lesson) string {
	base := strings.TrimSuffix(filepath.Base(lesson.FilePath), filepath.Ext(lesson.FilePath))
	return filepath.Join(outputDir, lesson.Name, base+".md")
}
