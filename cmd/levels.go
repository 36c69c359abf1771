package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/courseway/internal/catalog"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List course levels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		writeLevels(cmd.OutOrStdout(), s.catalog, s.progress.Record(cmd.Context()).SelectedLevel)
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:       "select <level>",
	Short:     "Choose the course level to follow",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"beginner", "standard", "advanced"},
	RunE: func(cmd *cobra.Command, args []string) error {
		level, ok := catalog.ParseLevel(strings.ToLower(args[0]))
		if !ok {
			return fmt.Errorf("unknown level %q: want one of beginner, standard, advanced", args[0])
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		if _, err := s.progress.SelectLevel(ctx, level); err != nil {
			return fmt.Errorf("select level: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Selected %s.\n", levelLabel(s.catalog, level))
		if next, ok := s.progress.NextIncompleteLesson(ctx, level); ok {
			fmt.Fprintf(out, "Start with %s: %s\n", next.Lesson.ID, next.Lesson.Title)
		}
		return nil
	},
}
