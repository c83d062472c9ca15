package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoz/internal/progress"
	"github.com/abhisek/lingoz/internal/session"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson <level-id>",
	Short: "Play the lesson for one level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		course, err := a.loadCourse(cmd)
		if err != nil {
			return err
		}
		levelID := args[0]
		_, unit, ok := course.Level(levelID)
		if !ok {
			return fmt.Errorf("unknown level %q", levelID)
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			if !progress.UnitUnlocked(course, unit.ID, a.scores.ExamScores(ctx)) {
				return fmt.Errorf("unit %q is locked: pass the previous unit's exam first", unit.ID)
			}
			if !progress.LevelUnlocked(unit, levelID, a.scores.LessonScores(ctx)) {
				return fmt.Errorf("level %q is locked: earn a star on the previous level first", levelID)
			}
		}

		sel, err := session.LessonSelection(course, levelID)
		if err != nil {
			return err
		}
		q, err := a.builder().Build(session.ModeLesson, sel, a.cfg.ContentGender())
		if err != nil {
			return err
		}

		r := a.runner(session.Options{Mode: session.ModeLesson, LevelID: levelID})
		if err := r.Start(ctx, q); err != nil {
			return err
		}
		return playSession(ctx, cmd, r)
	},
}

func init() {
	lessonCmd.Flags().Bool("force", false, "Play even if the level is locked")
}
