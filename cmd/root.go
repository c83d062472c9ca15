package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lingoz/internal/config"
	"github.com/abhisek/lingoz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lingoz",
	Short: "Terminal language course with spaced repetition",
	Long: "Lingoz plays language lessons, unit exams and practice sessions in the terminal,\n" +
		"scheduling missed words for review with Leitner boxes.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGOZ_DB env var)")
	rootCmd.PersistentFlags().String("course", "", "Path to course bundle (overrides LINGOZ_COURSE env var)")

	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LINGOZ_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resolveCoursePath returns --course if set, else the configured path.
func resolveCoursePath(cmd *cobra.Command, cfg config.Config) string {
	if p, _ := cmd.Flags().GetString("course"); p != "" {
		return p
	}
	return cfg.CoursePath
}
