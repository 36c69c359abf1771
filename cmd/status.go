package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/courseway/internal/catalog"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"stats"},
	Short:   "Show progress for the selected level",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		levelFlag, _ := cmd.Flags().GetString("level")

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		level := s.progress.Record(ctx).SelectedLevel
		if levelFlag != "" {
			l, ok := catalog.ParseLevel(levelFlag)
			if !ok {
				return fmt.Errorf("unknown level %q", levelFlag)
			}
			level = l
		}
		if level == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No level selected yet. Run: courseway select <level>")
			return nil
		}
		return writeStatus(ctx, cmd.OutOrStdout(), s.progress, level, asJSON)
	},
}

func init() {
	statusCmd.Flags().Bool("json", false, "Print machine-readable JSON")
	statusCmd.Flags().String("level", "", "Report on this level instead of the selected one")
}
