package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/courseway/internal/progress"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson <id>",
	Short: "Print a lesson, or open it in the TUI with --open",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if open, _ := cmd.Flags().GetBool("open"); open {
			return runApp(cmd, args[0])
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		ref, err := s.progress.ResolveLesson(ctx, args[0])
		if err != nil {
			return lessonError(args[0], err)
		}
		writeLesson(cmd.OutOrStdout(), ref, s.progress.IsLessonCompleted(ctx, ref.Lesson.ID))
		return nil
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a lesson as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		ref, err := s.progress.ResolveLesson(ctx, args[0])
		if err != nil {
			return lessonError(args[0], err)
		}
		if s.progress.IsLessonCompleted(ctx, ref.Lesson.ID) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already completed.\n", ref.Lesson.ID)
			return nil
		}
		if _, err := s.progress.MarkLessonComplete(ctx, ref.Lesson.ID); err != nil {
			return fmt.Errorf("mark complete: %w", err)
		}

		stats := s.progress.CompletionStats(ctx, ref.Level)
		fmt.Fprintf(cmd.OutOrStdout(), "Completed %s. %d/%d lessons done.\n",
			ref.Lesson.Title, stats.CompletedCount, stats.TotalCount)
		return nil
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next lesson to take",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		level := s.progress.Record(ctx).SelectedLevel
		if level == "" {
			fmt.Fprintln(out, "No level selected yet. Run: courseway select <level>")
			return nil
		}
		next, ok := s.progress.NextIncompleteLesson(ctx, level)
		if !ok {
			fmt.Fprintln(out, "All lessons complete. Congratulations!")
			return nil
		}
		fmt.Fprintf(out, "%s\tL%d %s (%s)\n", next.Lesson.ID, next.Lesson.Number, next.Lesson.Title, next.Lesson.Duration)
		return nil
	},
}

func init() {
	lessonCmd.Flags().Bool("open", false, "Open the lesson in the interactive TUI")
}

func lessonError(id string, err error) error {
	switch {
	case errors.Is(err, progress.ErrLessonNotFound):
		return fmt.Errorf("lesson %q is not part of the selected level's course", id)
	case errors.Is(err, progress.ErrLevelNotSelected):
		return fmt.Errorf("lesson %q not found; pick a level with: courseway select <level>", id)
	}
	return err
}
