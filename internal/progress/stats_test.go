package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/courseway/internal/catalog"
)

func completed(ids ...string) Record {
	rec := NewRecord()
	for _, id := range ids {
		rec.Lessons[id] = LessonProgress{LessonID: id, Completed: true}
	}
	return rec
}

func TestPhaseTotalsMatchCompletionTotal(t *testing.T) {
	cat := catalog.MustDefault()
	rec := NewRecord()

	for _, level := range catalog.AllLevels() {
		sum := 0
		for _, p := range cat.PhasesByLevel(level) {
			sum += rec.PhaseStats(cat, p.ID, level).Total
		}
		assert.Equal(t, rec.CompletionStats(cat, level).TotalCount, sum, "level %s", level)
	}
}

func TestBeginnerScenario(t *testing.T) {
	cat := catalog.MustDefault()
	rec := completed("beginner-lesson1", "beginner-lesson2", "beginner-lesson3")

	assert.Equal(t, PhaseStats{Completed: 3, Total: 3, Percent: 100}, rec.PhaseStats(cat, 1, catalog.LevelBeginner))
	assert.Equal(t, Stats{CompletedCount: 3, TotalCount: 10, Percent: 30}, rec.CompletionStats(cat, catalog.LevelBeginner))

	next, ok := rec.NextIncompleteLesson(cat, catalog.LevelBeginner)
	require.True(t, ok)
	assert.Equal(t, 2, next.Phase.ID)
	assert.Equal(t, cat.PhasesByLevel(catalog.LevelBeginner)[1].Lessons[0].ID, next.Lesson.ID)
}

func TestCompletionStatsIgnoresOtherLevels(t *testing.T) {
	cat := catalog.MustDefault()
	rec := completed("beginner-lesson1", "phase1-lesson1")

	s := rec.CompletionStats(cat, catalog.LevelBeginner)
	assert.Equal(t, 1, s.CompletedCount)
	assert.Equal(t, 10, s.TotalCount)
}

func TestIncompleteEntryIsNotCompleted(t *testing.T) {
	rec := NewRecord()
	rec.Lessons["beginner-lesson1"] = LessonProgress{LessonID: "beginner-lesson1"}

	assert.False(t, rec.IsLessonCompleted("beginner-lesson1"))
	assert.False(t, rec.IsLessonCompleted("beginner-lesson2"))
}

func TestPhaseStatsUnknownPhase(t *testing.T) {
	cat := catalog.MustDefault()
	assert.Equal(t, PhaseStats{}, NewRecord().PhaseStats(cat, 99, catalog.LevelBeginner))
}

func TestStatsForEmptyLevel(t *testing.T) {
	cat := catalog.MustDefault()
	rec := NewRecord()

	assert.Equal(t, Stats{}, rec.CompletionStats(cat, catalog.Level("unknown")))
	_, ok := rec.NextIncompleteLesson(cat, catalog.Level("unknown"))
	assert.False(t, ok)
}

func TestNextIncompleteNoneWhenAllDone(t *testing.T) {
	cat := catalog.MustDefault()
	var ids []string
	for _, ref := range cat.Lessons(catalog.LevelBeginner) {
		ids = append(ids, ref.Lesson.ID)
	}
	rec := completed(ids...)

	_, ok := rec.NextIncompleteLesson(cat, catalog.LevelBeginner)
	assert.False(t, ok)
	s := rec.CompletionStats(cat, catalog.LevelBeginner)
	assert.Equal(t, s.TotalCount, s.CompletedCount)
	assert.Equal(t, float64(100), s.Percent)
}

func TestNextIncompleteSkipsGaps(t *testing.T) {
	cat := catalog.MustDefault()
	rec := completed("phase1-lesson1", "phase1-lesson3")

	next, ok := rec.NextIncompleteLesson(cat, catalog.LevelStandard)
	require.True(t, ok)
	assert.Equal(t, "phase1-lesson2", next.Lesson.ID)
}

func TestEntriesOrder(t *testing.T) {
	rec := completed("b", "a")
	entries := rec.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].LessonID)
	assert.Equal(t, "b", entries[1].LessonID)
}
