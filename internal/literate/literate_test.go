package literate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLesson = `// ---
// title: Functions
// summary: Defining and calling functions.
// weight: 1
// tags: [functions, basics]
// ---

// A function is declared with the func keyword. This one adds two
// integers.
package main

import "fmt"

func add(a, b int) int {
	// indented comments stay with the code
	return a + b
}

// Functions can return multiple values, the closest thing Go has to
// tuples.
func divmod(a, b int) (int, int) {
	return a / b, a % b
}

func main() {
	fmt.Println(add(1, 2))
	q, r := divmod(7, 2)
	fmt.Println(q, r)
}

// Output:
// 3
// 3 1
`

func TestParseSampleLesson(t *testing.T) {
	lesson, err := Parse("lessons/01-functions/functions.go", []byte(sampleLesson))
	require.NoError(t, err)

	assert.Equal(t, "01-functions", lesson.Name)
	assert.Equal(t, "Functions", lesson.Meta.Title)
	assert.Equal(t, "Defining and calling functions.", lesson.Meta.Summary)
	assert.Equal(t, 1, lesson.Meta.Weight)
	assert.Equal(t, []string{"functions", "basics"}, lesson.Meta.Tags)

	require.Len(t, lesson.Segments, 5)
	assert.Equal(t, SegmentProse, lesson.Segments[0].Kind)
	assert.Equal(t, SegmentCode, lesson.Segments[1].Kind)
	assert.Equal(t, SegmentProse, lesson.Segments[2].Kind)
	assert.Equal(t, SegmentCode, lesson.Segments[3].Kind)
	assert.Equal(t, SegmentOutput, lesson.Segments[4].Kind)

	// Indented comments must not be promoted to prose
	assert.Contains(t, lesson.Segments[1].Lines, "\t// indented comments stay with the code")

	assert.True(t, lesson.HasOutput())
	assert.Equal(t, "3\n3 1\n", lesson.Output())
}

func TestParseWithoutFrontMatter(t *testing.T) {
	source := `// Just prose.
package main

func main() {}
`
	lesson, err := Parse("lessons/07-maps/maps.go", []byte(source))
	require.NoError(t, err)

	assert.Equal(t, "Maps", lesson.Meta.Title)
	assert.Equal(t, 7, lesson.Meta.Weight)
	assert.False(t, lesson.HasOutput())
	assert.Equal(t, "", lesson.Output())
}

func TestParseUnterminatedFrontMatter(t *testing.T) {
	source := `// ---
// title: Broken
package main
`
	_, err := Parse("lessons/02-closures/closures.go", []byte(source))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "front matter")
}

func TestParseBlankLinesSeparateProseParagraphs(t *testing.T) {
	source := `// First paragraph.
//
// Second paragraph.
package main
`
	lesson, err := Parse("lessons/03-loops/loops.go", []byte(source))
	require.NoError(t, err)

	require.Len(t, lesson.Segments, 2)
	assert.Equal(t, []string{"First paragraph.", "", "Second paragraph."}, lesson.Segments[0].Lines)
}

func TestTitleFromName(t *testing.T) {
	assert.Equal(t, "Loops", TitleFromName("03-loops"))
	assert.Equal(t, "Arrays And Slices", TitleFromName("arrays_and_slices"))
	assert.Equal(t, "Error Handling", TitleFromName("05-error-handling"))
}

func TestSegmentKindString(t *testing.T) {
	assert.Equal(t, "prose", SegmentProse.String())
	assert.Equal(t, "code", SegmentCode.String())
	assert.Equal(t, "output", SegmentOutput.String())
}
