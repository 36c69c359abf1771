// Package progress tracks which lessons a learner has completed and which
// level they are following, and derives completion views from the catalog.
package progress

import (
	"maps"
	"slices"
	"time"

	"github.com/abhisek/courseway/internal/catalog"
)

// LessonProgress is the completion state of one lesson.
type LessonProgress struct {
	LessonID    string
	Completed   bool
	CompletedAt time.Time // zero when unknown
}

// Record is the single progress record persisted under the storage key.
// Lessons is keyed by lesson ID, so a lesson has at most one entry.
type Record struct {
	SelectedLevel   catalog.Level // empty when no level has been chosen
	LevelSelectedAt time.Time
	Lessons         map[string]LessonProgress
}

// NewRecord returns the default record: no level, no lessons.
func NewRecord() Record {
	return Record{Lessons: make(map[string]LessonProgress)}
}

// HasLevel reports whether a level has been selected.
func (r Record) HasLevel() bool {
	return r.SelectedLevel != ""
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	cp := r
	cp.Lessons = maps.Clone(r.Lessons)
	if cp.Lessons == nil {
		cp.Lessons = make(map[string]LessonProgress)
	}
	return cp
}

// Entries returns the lesson entries ordered by completion time, then ID.
func (r Record) Entries() []LessonProgress {
	entries := slices.Collect(maps.Values(r.Lessons))
	slices.SortFunc(entries, func(a, b LessonProgress) int {
		if c := a.CompletedAt.Compare(b.CompletedAt); c != 0 {
			return c
		}
		if a.LessonID < b.LessonID {
			return -1
		}
		if a.LessonID > b.LessonID {
			return 1
		}
		return 0
	})
	return entries
}
