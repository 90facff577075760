package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/kutsjuice/weft/internal/literate"
)

// LessonRegistry manages all discovered lessons
type LessonRegistry struct {
	lessons  map[string]*LessonInfo
	mutex    sync.RWMutex
	watchers []chan LessonEvent
}

// LessonInfo holds a parsed lesson plus discovery metadata
type LessonInfo struct {
	Name     string
	FilePath string
	Lesson   *literate.Lesson
	LastMod  time.Time
	Hash     string
}

// LessonEvent represents a change in the lesson registry
type LessonEvent struct {
	Type      EventType
	Lesson    *LessonInfo
	Timestamp time.Time
}

// EventType represents the type of lesson event
type EventType int

const (
	EventTypeAdded EventType = iota
	EventTypeUpdated
	EventTypeRemoved
)

// NewLessonRegistry creates a new lesson registry
func NewLessonRegistry() *LessonRegistry {
	return &LessonRegistry{
		lessons:  make(map[string]*LessonInfo),
		watchers: make([]chan LessonEvent, 0),
	}
}

// Register adds or updates a lesson in the registry
func (r *LessonRegistry) Register(lesson *LessonInfo) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	eventType := EventTypeAdded
	if _, exists := r.lessons[lesson.Name]; exists {
		eventType = EventTypeUpdated
	}

	r.lessons[lesson.Name] = lesson

	r.notify(LessonEvent{
		Type:      eventType,
		Lesson:    lesson,
		Timestamp: time.Now(),
	})
}

// Get retrieves a lesson by name
func (r *LessonRegistry) Get(name string) (*LessonInfo, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	lesson, exists := r.lessons[name]
	return lesson, exists
}

// GetAll returns all registered lessons sorted by weight, then name
func (r *LessonRegistry) GetAll() []*LessonInfo {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*LessonInfo, 0, len(r.lessons))
	for _, lesson := range r.lessons {
		result = append(result, lesson)
	}

	sort.Slice(result, func(i, j int) bool {
		wi, wj := result[i].Lesson.Meta.Weight, result[j].Lesson.Meta.Weight
		if wi != wj {
			return wi < wj
		}
		return result[i].Name < result[j].Name
	})

	return result
}

// Remove removes a lesson from the registry
func (r *LessonRegistry) Remove(name string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	lesson, exists := r.lessons[name]
	if !exists {
		return
	}

	delete(r.lessons, name)

	r.notify(LessonEvent{
		Type:      EventTypeRemoved,
		Lesson:    lesson,
		Timestamp: time.Now(),
	})
}

// Watch returns a channel that receives lesson events
func (r *LessonRegistry) Watch() <-chan LessonEvent {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ch := make(chan LessonEvent, 100)
	r.watchers = append(r.watchers, ch)
	return ch
}

// UnWatch removes a watcher channel and closes it
func (r *LessonRegistry) UnWatch(ch <-chan LessonEvent) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, watcher := range r.watchers {
		if watcher == ch {
			close(watcher)
			r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
			break
		}
	}
}

// Count returns the number of registered lessons
func (r *LessonRegistry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.lessons)
}

// notify broadcasts an event to all watchers; callers must hold the lock.
func (r *LessonRegistry) notify(event LessonEvent) {
	for _, watcher := range r.watchers {
		select {
		case watcher <- event:
		default:
			// Skip if channel is full
		}
	}
}
