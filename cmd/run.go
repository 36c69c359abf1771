package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/courseway/internal/app"
)

// runApp opens the session and launches the TUI, optionally straight
// into a lesson.
func runApp(cmd *cobra.Command, lessonID string) error {
	s, err := openTUISession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	s.log.Info("starting tui")
	return app.Run(app.Options{
		Ctx:        cmd.Context(),
		Progress:   s.progress,
		Catalog:    s.catalog,
		Logger:     s.log.Named("tui"),
		LessonID:   lessonID,
		SkipSplash: lessonID != "",
	})
}
