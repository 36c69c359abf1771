package progress

import "github.com/abhisek/courseway/internal/catalog"

// Stats summarizes completion across a whole level.
type Stats struct {
	CompletedCount int     `json:"completedCount"`
	TotalCount     int     `json:"totalCount"`
	Percent        float64 `json:"percent"`
}

// PhaseStats summarizes completion within one phase.
type PhaseStats struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

// IsLessonCompleted reports whether lessonID has a completed entry.
func (r Record) IsLessonCompleted(lessonID string) bool {
	lp, ok := r.Lessons[lessonID]
	return ok && lp.Completed
}

// CompletionStats counts the completed lessons of level's curriculum.
// Entries for lessons outside the level are ignored.
func (r Record) CompletionStats(cat *catalog.Catalog, level catalog.Level) Stats {
	var s Stats
	for _, phase := range cat.PhasesByLevel(level) {
		ps := r.phaseStats(phase)
		s.CompletedCount += ps.Completed
		s.TotalCount += ps.Total
	}
	s.Percent = percent(s.CompletedCount, s.TotalCount)
	return s
}

// PhaseStats counts the completed lessons of one phase. An unknown phase
// yields zero stats.
func (r Record) PhaseStats(cat *catalog.Catalog, phaseID int, level catalog.Level) PhaseStats {
	phase, ok := cat.FindPhase(phaseID, level)
	if !ok {
		return PhaseStats{}
	}
	return r.phaseStats(*phase)
}

func (r Record) phaseStats(phase catalog.Phase) PhaseStats {
	ps := PhaseStats{Total: len(phase.Lessons)}
	for _, lesson := range phase.Lessons {
		if r.IsLessonCompleted(lesson.ID) {
			ps.Completed++
		}
	}
	ps.Percent = percent(ps.Completed, ps.Total)
	return ps
}

// NextIncompleteLesson returns the first lesson in catalog order that is
// not completed. It returns false when every lesson is done or the level
// has no lessons.
func (r Record) NextIncompleteLesson(cat *catalog.Catalog, level catalog.Level) (catalog.LessonRef, bool) {
	for _, ref := range cat.Lessons(level) {
		if !r.IsLessonCompleted(ref.Lesson.ID) {
			return ref, true
		}
	}
	return catalog.LessonRef{}, false
}

func percent(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) * 100 / float64(total)
}
