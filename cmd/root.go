package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/courseway/internal/config"
)

// settings holds the merged flag, environment and config file values.
var settings = config.New()

var rootCmd = &cobra.Command{
	Use:   "courseway",
	Short: "Learn to build web apps with AI, in your terminal",
	Long: "Courseway: a self-paced course on building web apps with AI assistants.\n" +
		"Pick a level, work through the lessons, and track your progress locally.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Directory containing config.yaml (default $XDG_CONFIG_HOME/courseway)")
	flags.String("db", "", "Path to SQLite database file (overrides COURSEWAY_DB env var)")
	flags.String("storage-key", "", "Key the progress record is stored under")
	flags.Bool("multi-level", true, "Enable the beginner/standard/advanced level selector")
	flags.String("default-level", "standard", "Level used when none has been selected")
	flags.String("content-dir", "", "Load course content from this directory instead of the built-in catalog")
	flags.String("log-file", "", "Log file path (default: next to the database)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.Bool("log-stderr", false, "Also print logs to stderr (ignored by the interactive UI)")

	bindFlag(settings, config.KeyDB, "db")
	bindFlag(settings, config.KeyStorageKey, "storage-key")
	bindFlag(settings, config.KeyMultiLevel, "multi-level")
	bindFlag(settings, config.KeyDefaultLevel, "default-level")
	bindFlag(settings, config.KeyContentDir, "content-dir")
	bindFlag(settings, config.KeyLogFile, "log-file")
	bindFlag(settings, config.KeyLogLevel, "log-level")
	bindFlag(settings, config.KeyLogStderr, "log-stderr")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

func bindFlag(v *viper.Viper, key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}
