package progress

import (
	"fmt"

	"github.com/abhisek/courseway/internal/catalog"
	"github.com/abhisek/courseway/internal/store"
)

// DescribeEvent renders a progress event as a short sentence, using
// display names from cat where the event refers to known levels and
// lessons.
func DescribeEvent(cat *catalog.Catalog, ev store.ProgressEvent) string {
	switch ev.Kind {
	case store.EventLevelSelected:
		to := levelName(cat, ev.Level)
		if ev.FromLevel == "" {
			return "Started the " + to + " course"
		}
		text := fmt.Sprintf("Switched from %s to %s", levelName(cat, ev.FromLevel), to)
		if ev.LessonID != "" {
			text += " (was on " + lessonTitle(cat, ev.LessonID, ev.FromLevel) + ")"
		}
		return text
	case store.EventLessonCompleted:
		return "Completed " + lessonTitle(cat, ev.LessonID, ev.Level)
	case store.EventProgressReset:
		if ev.FromLevel != "" {
			return "Progress reset (was on " + levelName(cat, ev.FromLevel) + ")"
		}
		return "Progress reset"
	}
	return string(ev.Kind)
}

func levelName(cat *catalog.Catalog, id string) string {
	if cfg, ok := cat.Config(catalog.Level(id)); ok {
		return cfg.Badge()
	}
	return id
}

func lessonTitle(cat *catalog.Catalog, id, level string) string {
	if ref, ok := cat.FindLesson(id, catalog.Level(level)); ok {
		return fmt.Sprintf("L%d %s", ref.Lesson.Number, ref.Lesson.Title)
	}
	return id
}
