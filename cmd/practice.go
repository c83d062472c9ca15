package cmd

import (
	"context"
	"errors"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingoz/internal/calendar"
	"github.com/abhisek/lingoz/internal/session"
	"github.com/abhisek/lingoz/internal/ui/theme"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Practice exercises from chosen levels",
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
		levels, _ := cmd.Flags().GetStringSlice("levels")
		count, _ := cmd.Flags().GetInt("count")
		shuffle, _ := cmd.Flags().GetBool("shuffle")

		if len(levels) == 0 {
			for _, u := range course.Units {
				for _, l := range u.Levels {
					levels = append(levels, l.ID)
				}
			}
		}

		sel := session.PracticeSelection(course, levels, count, shuffle)
		return runPractice(ctx, cmd, a, sel)
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Practice exercises due for review or missed most often",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		name, _ := cmd.Flags().GetString("source")
		count, _ := cmd.Flags().GetInt("count")
		source, err := session.ParseReviewSource(name)
		if err != nil {
			return err
		}

		sel, err := session.ReviewSelection(a.reviews, source, calendar.Today(), count)
		if err != nil {
			return err
		}
		return runPractice(ctx, cmd, a, sel)
	},
}

// runPractice builds a practice queue, parks it as the current practice
// session and plays it back from there.
func runPractice(ctx context.Context, cmd *cobra.Command, a *app, sel session.Selection) error {
	q, err := a.builder().Build(session.ModePractice, sel, a.cfg.ContentGender())
	if errors.Is(err, session.ErrNoContent) {
		lipgloss.Fprintln(cmd.OutOrStdout(), theme.Hint.Render("Nothing to practice right now."))
		return nil
	}
	if err != nil {
		return err
	}

	r := a.runner(session.Options{Mode: session.ModePractice})
	if _, err := session.SaveHandoff(ctx, a.db, session.ModePractice, q); err != nil {
		a.logger.Warn("practice handoff not saved", "err", err)
		if err := r.Start(ctx, q); err != nil {
			return err
		}
		return playSession(ctx, cmd, r)
	}

	h, ok, err := session.TakeHandoff(ctx, a.db)
	if err != nil {
		a.logger.Warn("practice handoff not cleared", "err", err)
	}
	if !ok {
		return errors.New("practice session vanished before it started")
	}
	if err := r.StartFromHandoff(ctx, h); err != nil {
		return err
	}
	return playSession(ctx, cmd, r)
}

func init() {
	practiceCmd.Flags().StringSlice("levels", nil, "Level IDs to draw from (default: all levels)")
	practiceCmd.Flags().Int("count", session.DefaultPracticeSize, "Number of questions: 5, 10, 20 or 30")
	practiceCmd.Flags().Bool("shuffle", false, "Shuffle the selected exercises")

	reviewCmd.Flags().String("source", string(session.SourceDue), "Review source: due or hardest")
	reviewCmd.Flags().Int("count", session.DefaultPracticeSize, "Number of questions: 5, 10, 20 or 30")
}
