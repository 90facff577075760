// Package literate parses weft lesson sources.
//
// A lesson is an ordinary runnable Go file whose top-level line comments
// carry the narrative. The parser splits a file into three kinds of
// segments: prose (top-level comment blocks, treated as Markdown), code
// (everything else, including comments indented inside code), and an
// optional trailing output block introduced by "// Output:" in the style of
// Go example tests. An optional leading comment block delimited by "// ---"
// lines holds YAML front matter with the lesson metadata.
package literate

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SegmentKind identifies what a parsed segment contains.
type SegmentKind int

const (
	SegmentProse SegmentKind = iota
	SegmentCode
	SegmentOutput
)

// String returns the string representation of the segment kind
func (k SegmentKind) String() string {
	switch k {
	case SegmentProse:
		return "prose"
	case SegmentCode:
		return "code"
	case SegmentOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Segment is a contiguous run of lines of one kind.
type Segment struct {
	Kind  SegmentKind
	Lines []string
}

// Meta holds lesson front matter.
type Meta struct {
	Title   string   `yaml:"title"`
	Summary string   `yaml:"summary"`
	Weight  int      `yaml:"weight"`
	Tags    []string `yaml:"tags"`
	Draft   bool     `yaml:"draft"`
}

// Lesson is a parsed lesson document.
type Lesson struct {
	// Name is the lesson slug, derived from the containing directory.
	Name     string
	FilePath string
	Meta     Meta
	Segments []Segment
}

const (
	commentPrefix    = "// "
	bareComment      = "//"
	frontMatterFence = "// ---"
	outputMarker     = "// Output:"
)

var titleCaser = cases.Title(language.English)

// Parse parses lesson source into a Lesson. The path is used for the slug,
// the default title, and error positions.
func Parse(path string, source []byte) (*Lesson, error) {
	lesson := &Lesson{
		Name:     filepath.Base(filepath.Dir(path)),
		FilePath: path,
	}
	if lesson.Name == "." || lesson.Name == string(filepath.Separator) {
		lesson.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	lines := splitLines(source)
	rest, err := parseFrontMatter(lesson, lines)
	if err != nil {
		return nil, err
	}

	parseSegments(lesson, rest)
	applyDefaults(lesson)

	return lesson, nil
}

// Output returns the recorded expected output, one trailing newline
// included, or the empty string when the lesson has no output block.
func (l *Lesson) Output() string {
	for _, seg := range l.Segments {
		if seg.Kind == SegmentOutput {
			return strings.Join(seg.Lines, "\n") + "\n"
		}
	}
	return ""
}

// HasOutput reports whether the lesson records expected output.
func (l *Lesson) HasOutput() bool {
	for _, seg := range l.Segments {
		if seg.Kind == SegmentOutput {
			return true
		}
	}
	return false
}

// Title returns the front matter title, already defaulted at parse time.
func (l *Lesson) Title() string {
	return l.Meta.Title
}

func splitLines(source []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(string(source)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

// parseFrontMatter consumes a leading "// ---" fenced block when present and
// returns the remaining lines. The block is comment-stripped and handed to
// the frontmatter library as a regular YAML document.
func parseFrontMatter(lesson *Lesson, lines []string) ([]string, error) {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}

	if start >= len(lines) || strings.TrimSpace(lines[start]) != frontMatterFence {
		return lines[start:], nil
	}

	var doc strings.Builder
	doc.WriteString("---\n")

	end := -1
	for i := start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontMatterFence {
			end = i
			break
		}
		stripped, ok := stripComment(lines[i])
		if !ok {
			return nil, fmt.Errorf("%s:%d: front matter interrupted by non-comment line", lesson.FilePath, i+1)
		}
		doc.WriteString(stripped)
		doc.WriteByte('\n')
	}
	if end == -1 {
		return nil, fmt.Errorf("%s:%d: unterminated front matter block", lesson.FilePath, start+1)
	}
	doc.WriteString("---\n")

	if _, err := frontmatter.Parse(strings.NewReader(doc.String()), &lesson.Meta); err != nil {
		return nil, fmt.Errorf("%s: parse front matter: %w", lesson.FilePath, err)
	}

	return lines[end+1:], nil
}

func parseSegments(lesson *Lesson, lines []string) {
	var current *Segment

	open := func(kind SegmentKind) *Segment {
		lesson.Segments = append(lesson.Segments, Segment{Kind: kind})
		return &lesson.Segments[len(lesson.Segments)-1]
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			// Blank lines separate prose paragraphs but stay inside code;
			// trailing blanks are trimmed when a segment closes.
			if current != nil {
				current.Lines = append(current.Lines, "")
			}

		case strings.HasPrefix(line, outputMarker) && (current == nil || current.Kind != SegmentOutput):
			trimTrailingBlanks(current)
			current = open(SegmentOutput)

		case isTopLevelComment(line):
			if current != nil && current.Kind == SegmentOutput {
				stripped, _ := stripComment(line)
				current.Lines = append(current.Lines, stripped)
				continue
			}
			if current == nil || current.Kind != SegmentProse {
				trimTrailingBlanks(current)
				current = open(SegmentProse)
			}
			stripped, _ := stripComment(line)
			current.Lines = append(current.Lines, stripped)

		default:
			if current == nil || current.Kind != SegmentCode {
				trimTrailingBlanks(current)
				current = open(SegmentCode)
			}
			current.Lines = append(current.Lines, line)
		}
	}

	trimTrailingBlanks(current)

	// Drop segments that ended up empty after blank trimming
	kept := lesson.Segments[:0]
	for _, seg := range lesson.Segments {
		if len(seg.Lines) > 0 {
			kept = append(kept, seg)
		}
	}
	lesson.Segments = kept
}

func applyDefaults(lesson *Lesson) {
	if lesson.Meta.Title == "" {
		lesson.Meta.Title = TitleFromName(lesson.Name)
	}
	if lesson.Meta.Weight == 0 {
		lesson.Meta.Weight = weightFromName(lesson.Name)
	}
}

// TitleFromName derives a human readable title from a lesson slug, e.g.
// "03-loops" becomes "Loops" and "arrays_and_slices" becomes
// "Arrays And Slices".
func TitleFromName(name string) string {
	trimmed := strings.TrimLeft(name, "0123456789")
	trimmed = strings.TrimLeft(trimmed, "-_. ")
	if trimmed == "" {
		trimmed = name
	}
	trimmed = strings.NewReplacer("-", " ", "_", " ").Replace(trimmed)
	return titleCaser.String(trimmed)
}

func weightFromName(name string) int {
	weight := 0
	for _, r := range name {
		if r < '0' || r > '9' {
			break
		}
		weight = weight*10 + int(r-'0')
	}
	return weight
}

func isTopLevelComment(line string) bool {
	return strings.HasPrefix(line, commentPrefix) || line == bareComment
}

func stripComment(line string) (string, bool) {
	if strings.HasPrefix(line, commentPrefix) {
		return line[len(commentPrefix):], true
	}
	if strings.TrimRight(line, " \t") == bareComment {
		return "", true
	}
	return line, false
}

func trimTrailingBlanks(seg *Segment) {
	if seg == nil {
		return
	}
	for len(seg.Lines) > 0 && seg.Lines[len(seg.Lines)-1] == "" {
		seg.Lines = seg.Lines[:len(seg.Lines)-1]
	}
}
