package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoz/internal/progress"
	"github.com/abhisek/lingoz/internal/session"
)

var examCmd = &cobra.Command{
	Use:   "exam <unit-id>",
	Short: "Take the exam for a unit",
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
		unitID := args[0]

		force, _ := cmd.Flags().GetBool("force")
		if !force && !progress.UnitUnlocked(course, unitID, a.scores.ExamScores(ctx)) {
			return fmt.Errorf("unit %q is locked: pass the previous unit's exam first", unitID)
		}

		sel, err := session.ExamSelection(course, unitID)
		if err != nil {
			return err
		}
		q, err := a.builder().Build(session.ModeExam, sel, a.cfg.ContentGender())
		if err != nil {
			return err
		}

		r := a.runner(session.Options{Mode: session.ModeExam, UnitID: unitID})
		if err := r.Start(ctx, q); err != nil {
			return err
		}
		return playSession(ctx, cmd, r)
	},
}

func init() {
	examCmd.Flags().Bool("force", false, "Take the exam even if the unit is locked")
}
