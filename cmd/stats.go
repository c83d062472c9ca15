package cmd

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingoz/internal/calendar"
	"github.com/abhisek/lingoz/internal/content"
	"github.com/abhisek/lingoz/internal/progress"
	"github.com/abhisek/lingoz/internal/ui/components"
	"github.com/abhisek/lingoz/internal/ui/theme"
)

const barWidth = 20

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		o := a.progress().Overview(ctx, calendar.Today())
		out := cmd.OutOrStdout()
		printOverview(out, o)

		// The course is optional here: without it only totals are shown.
		course, err := a.loadCourse(cmd)
		if err != nil {
			a.logger.Debug("course unavailable for stats", "err", err)
			return nil
		}
		printCourse(out, course, o)
		return nil
	},
}

func printOverview(out io.Writer, o progress.Overview) {
	lipgloss.Fprintln(out, theme.Title.Render("Today"))

	streak := fmt.Sprintf("Streak: %d day", o.Streak)
	if o.Streak != 1 {
		streak += "s"
	}
	if o.StreakAlive && !o.GoalMet() {
		streak += theme.Hint.Render("  (reach today's goal to keep it)")
	}
	lipgloss.Fprintln(out, streak)
	lipgloss.Fprintln(out, components.Bar{
		Label: "Goal ", Value: o.TodayCorrect, Max: o.DailyGoal, Width: barWidth, ShowCount: true,
	}.View())
	lipgloss.Fprintln(out, fmt.Sprintf("Mistakes today: %d   Due for review: %d", o.TodayMistakes, o.DueCount))

	lipgloss.Fprintln(out)
	lipgloss.Fprintln(out, theme.Title.Render("This week"))
	peak := 1
	for _, d := range o.Weekly {
		peak = max(peak, d.CorrectCount+d.WrongCount)
	}
	for _, d := range o.Weekly {
		total := d.CorrectCount + d.WrongCount
		label := d.Date.Time().Format("Mon")
		lipgloss.Fprintln(out, components.Bar{Label: label, Value: total, Max: peak, Width: barWidth}.View()+
			theme.Subtitle.Render(fmt.Sprintf("  %d✓ %d✗", d.CorrectCount, d.WrongCount)))
	}

	lipgloss.Fprintln(out)
	lipgloss.Fprintln(out, fmt.Sprintf("Stars earned: %d   Exams passed: %d", o.TotalStars(), o.PassedExams()))
}

func printCourse(out io.Writer, course *content.Course, o progress.Overview) {
	lipgloss.Fprintln(out)
	lipgloss.Fprintln(out, theme.Title.Render(course.Title))
	for _, u := range progress.Course(course, o.LessonScores, o.ExamScores) {
		exam := ""
		if u.ExamPassed {
			exam = theme.Correct.Render(" exam passed")
		}
		lipgloss.Fprintln(out, fmt.Sprintf("%s %s", titleOr(u.Title, u.UnitID), exam))
		for _, l := range u.Levels {
			lipgloss.Fprintln(out, fmt.Sprintf("  %s %s %s",
				l.State.Icon(), components.Stars(l.Stars), titleOr(l.Title, l.LevelID)))
		}
	}
}

func titleOr(title, id string) string {
	if strings.TrimSpace(title) == "" {
		return id
	}
	return title
}
