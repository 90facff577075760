package renderer

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/kutsjuice/weft/internal/literate"
)

const sampleSource = `// ---
// title: Maps
// summary: Key/value collections built into the language.
// weight: 7
// ---

// A map of squares, built in a loop.
package main

import "fmt"

func main() {
	squares := map[int]int{}
	for i := 1; i <= 3; i++ {
		squares[i] = i * i
	}
	fmt.Println(squares[3])
}

// Output:
// 9
`

func parseSample(t *testing.T) *literate.Lesson {
	t.Helper()
	lesson, err := literate.Parse("lessons/07-maps/maps.go", []byte(sampleSource))
	require.NoError(t, err)
	return lesson
}

func TestMarkdownLayout(t *testing.T) {
	r := NewLessonRenderer("weft test", true)
	md := string(r.Markdown(parseSample(t)))

	assert.True(t, strings.HasPrefix(md, "# Maps\n\n"), "title heading first")
	assert.Contains(t, md, "Key/value collections built into the language.\n")
	assert.Contains(t, md, "A map of squares, built in a loop.\n")
	assert.Contains(t, md, "```go\npackage main\n")
	assert.Contains(t, md, "```\n9\n```")
	assert.Contains(t, md, "*This page was generated by weft test. Do not edit by hand.*")
	assert.True(t, strings.HasSuffix(md, "\n"), "document ends with newline")
}

func TestMarkdownWithoutFooter(t *testing.T) {
	r := NewLessonRenderer("weft test", false)
	md := string(r.Markdown(parseSample(t)))

	assert.NotContains(t, md, "generated by")
}

func TestHTMLStructure(t *testing.T) {
	r := NewLessonRenderer("weft test", true)
	rendered, err := r.HTML(parseSample(t))
	require.NoError(t, err)

	doc, err := html.Parse(bytes.NewReader(rendered))
	require.NoError(t, err)

	var h1Text string
	var codeBlocks int
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h1":
				if n.FirstChild != nil {
					h1Text = n.FirstChild.Data
				}
			case "pre":
				codeBlocks++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	assert.Equal(t, "Maps", h1Text)
	assert.Equal(t, 2, codeBlocks, "one code fence and one output fence")
}

func TestOutputPath(t *testing.T) {
	lesson := parseSample(t)
	path := OutputPath("docs", lesson)
	assert.Equal(t, filepath.Join("docs", "07-maps", "maps.md"), path)
}
