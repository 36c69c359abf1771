package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/courseway/internal/catalog"
	"github.com/abhisek/courseway/internal/progress"
	"github.com/abhisek/courseway/internal/quiz"
	"github.com/abhisek/courseway/internal/store"
	"github.com/abhisek/courseway/internal/ui/layout"
)

func levelLabel(cat *catalog.Catalog, level catalog.Level) string {
	if cfg, ok := cat.Config(level); ok {
		return cfg.Badge()
	}
	return string(level)
}

// writeLevels lists every level, marking the selected one.
func writeLevels(w io.Writer, cat *catalog.Catalog, selected catalog.Level) {
	for _, level := range catalog.AllLevels() {
		cfg, _ := cat.Config(level)
		marker := " "
		if level == selected {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-9s %s  (%d lessons, %s)\n", marker, level, cfg.Badge(),
			cat.TotalLessons(level), cat.TotalDuration(level))
		if cfg.Description != "" {
			fmt.Fprintf(w, "            %s\n", cfg.Description)
		}
	}
}

type phaseReport struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	progress.PhaseStats
}

type statusReport struct {
	Level      catalog.Level `json:"level"`
	MultiLevel bool          `json:"multiLevel"`
	progress.Stats
	Next   string        `json:"next,omitempty"`
	Phases []phaseReport `json:"phases"`
}

func buildStatus(ctx context.Context, ps *progress.Store, level catalog.Level) statusReport {
	r := statusReport{
		Level:      level,
		MultiLevel: ps.MultiLevel(),
		Stats:      ps.CompletionStats(ctx, level),
		Phases:     []phaseReport{},
	}
	if next, ok := ps.NextIncompleteLesson(ctx, level); ok {
		r.Next = next.Lesson.ID
	}
	for _, phase := range ps.Catalog().PhasesByLevel(level) {
		r.Phases = append(r.Phases, phaseReport{
			ID:         phase.ID,
			Title:      phase.Title,
			PhaseStats: ps.PhaseStats(ctx, phase.ID, level),
		})
	}
	return r
}

// writeStatus prints overall and per-phase progress for level.
func writeStatus(ctx context.Context, w io.Writer, ps *progress.Store, level catalog.Level, asJSON bool) error {
	r := buildStatus(ctx, ps, level)
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	cat := ps.Catalog()
	fmt.Fprintf(w, "%s: %d/%d lessons (%d%%)\n", levelLabel(cat, level),
		r.CompletedCount, r.TotalCount, layout.RoundPercent(r.Percent))
	unit := level.UnitLabel()
	for _, p := range r.Phases {
		fmt.Fprintf(w, "  %s %d  %-40s %d/%d\n", unit, p.ID, layout.Truncate(p.Title, 40), p.Completed, p.Total)
	}
	if r.Next != "" {
		if ref, ok := cat.FindLesson(r.Next, level); ok {
			fmt.Fprintf(w, "Next: %s (L%d %s)\n", r.Next, ref.Lesson.Number, ref.Lesson.Title)
		}
	} else if r.TotalCount > 0 {
		fmt.Fprintln(w, "All lessons complete. Congratulations!")
	}
	return nil
}

// writeLesson prints a lesson as plain text. Quiz answers are left out.
func writeLesson(w io.Writer, ref catalog.LessonRef, completed bool) {
	lesson := ref.Lesson
	fmt.Fprintf(w, "%s %d - Lesson %d: %s\n", ref.Level.UnitLabel(), ref.Phase.ID, lesson.Number, lesson.Title)
	state := "not completed"
	if completed {
		state = "completed"
	}
	fmt.Fprintf(w, "%s · %s · %s\n", lesson.ID, lesson.Duration, state)
	if lesson.Description != "" {
		fmt.Fprintf(w, "\n%s\n", lesson.Description)
	}
	if len(lesson.Objectives) > 0 {
		fmt.Fprintln(w, "\nLearning goals:")
		for _, o := range lesson.Objectives {
			fmt.Fprintf(w, "  - %s\n", o)
		}
	}
	for i, s := range lesson.Sections {
		fmt.Fprintf(w, "\n## %d. %s\n", i+1, s.Title)
		if s.VideoURL != "" {
			fmt.Fprintf(w, "Video: %s\n", s.VideoURL)
		}
		if content := strings.TrimSpace(s.Content); content != "" {
			fmt.Fprintf(w, "\n%s\n", content)
		}
		if s.Quiz != nil {
			fmt.Fprintf(w, "\nQuiz: %s\n", s.Quiz.Question)
			for j, opt := range s.Quiz.Options {
				fmt.Fprintf(w, "  %s) %s\n", quiz.OptionLabel(j), opt)
			}
		}
	}
}

// writeHistory prints events newest first.
func writeHistory(w io.Writer, cat *catalog.Catalog, events []store.ProgressEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No history yet.")
		return
	}
	for _, ev := range events {
		fmt.Fprintf(w, "%s  %s\n", ev.Timestamp.Local().Format("2006-01-02 15:04"), progress.DescribeEvent(cat, ev))
	}
}
