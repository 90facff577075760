package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kutsjuice/weft/internal/literate"
)

func lessonInfo(name string, weight int) *LessonInfo {
	return &LessonInfo{
		Name:     name,
		FilePath: "lessons/" + name + "/" + name + ".go",
		Lesson: &literate.Lesson{
			Name: name,
			Meta: literate.Meta{Title: literate.TitleFromName(name), Weight: weight},
		},
		LastMod: time.Now(),
	}
}

func TestRegisterAndGet(t *testing.T) {
	reg := NewLessonRegistry()

	reg.Register(lessonInfo("01-functions", 1))
	assert.Equal(t, 1, reg.Count())

	lesson, exists := reg.Get("01-functions")
	require.True(t, exists)
	assert.Equal(t, "01-functions", lesson.Name)

	_, exists = reg.Get("missing")
	assert.False(t, exists)
}

func TestGetAllSortedByWeight(t *testing.T) {
	reg := NewLessonRegistry()
	reg.Register(lessonInfo("08-sets", 8))
	reg.Register(lessonInfo("01-functions", 1))
	reg.Register(lessonInfo("03-loops", 3))

	all := reg.GetAll()
	require.Len(t, all, 3)
	assert.Equal(t, "01-functions", all[0].Name)
	assert.Equal(t, "03-loops", all[1].Name)
	assert.Equal(t, "08-sets", all[2].Name)
}

func TestWatchReceivesEvents(t *testing.T) {
	reg := NewLessonRegistry()
	events := reg.Watch()

	reg.Register(lessonInfo("02-closures", 2))
	event := <-events
	assert.Equal(t, EventTypeAdded, event.Type)
	assert.Equal(t, "02-closures", event.Lesson.Name)

	reg.Register(lessonInfo("02-closures", 2))
	event = <-events
	assert.Equal(t, EventTypeUpdated, event.Type)

	reg.Remove("02-closures")
	event = <-events
	assert.Equal(t, EventTypeRemoved, event.Type)
	assert.Equal(t, 0, reg.Count())

	reg.UnWatch(events)
	_, open := <-events
	assert.False(t, open)
}

func TestRemoveMissingLessonIsNoop(t *testing.T) {
	reg := NewLessonRegistry()
	reg.Remove("missing")
	assert.Equal(t, 0, reg.Count())
}
