package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingoz/internal/answer"
	"github.com/abhisek/lingoz/internal/content"
	"github.com/abhisek/lingoz/internal/session"
	"github.com/abhisek/lingoz/internal/ui/components"
	"github.com/abhisek/lingoz/internal/ui/theme"
)

// Commands recognised at the answer prompt.
const (
	inputAudio = ":audio"
	inputQuit  = ":quit"
)

var errQuit = errors.New("session abandoned")

// playSession drives a started runner from the command's stdin until it
// finishes or the learner quits.
func playSession(ctx context.Context, cmd *cobra.Command, r *session.Runner) error {
	out := cmd.OutOrStdout()
	if sum, done := r.Summary(); done {
		printSummary(out, sum)
		return nil
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	for {
		ex, ok := r.Current()
		if !ok {
			return fmt.Errorf("session in unexpected phase %s", r.State().Phase)
		}
		printExercise(out, r.State(), ex)

		input, err := readAnswer(in, out, ex, r)
		if errors.Is(err, errQuit) {
			lipgloss.Fprintln(out, theme.Hint.Render("Session abandoned. Progress so far is saved."))
			return nil
		}
		if err != nil {
			return err
		}

		outcome, err := r.Submit(ctx, input)
		if err != nil {
			return err
		}
		printOutcome(out, outcome)

		sum, err := r.Advance(ctx)
		if err != nil {
			return err
		}
		if sum != nil {
			printSummary(out, sum)
			return nil
		}
	}
}

func readAnswer(in *bufio.Scanner, out io.Writer, ex content.Exercise, r *session.Runner) (answer.Input, error) {
	for {
		fmt.Fprint(out, "> ")
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return answer.Input{}, fmt.Errorf("read answer: %w", err)
			}
			return answer.Input{}, errQuit
		}
		line := strings.TrimSpace(in.Text())

		switch line {
		case inputQuit:
			return answer.Input{}, errQuit
		case inputAudio:
			r.PlayAudio()
			continue
		}

		if ex.Kind != content.KindMultipleChoice {
			return answer.Text(line), nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(ex.Options) {
			lipgloss.Fprintln(out, theme.Hint.Render(fmt.Sprintf("Pick a number from 1 to %d.", len(ex.Options))))
			continue
		}
		return answer.Choice(n - 1), nil
	}
}

func printExercise(out io.Writer, st session.State, ex content.Exercise) {
	header := fmt.Sprintf("[%d/%d]", st.Cursor+1, st.Queue.Len())
	lipgloss.Fprintln(out)
	lipgloss.Fprintln(out, theme.Subtitle.Render(header)+" "+theme.Prompt.Render(ex.Prompt))

	switch ex.Kind {
	case content.KindMultipleChoice:
		lipgloss.Fprintln(out, components.Choices(ex.Options))
	case content.KindTranslateToTarget:
		lipgloss.Fprintln(out, theme.Hint.Render("Translate into the course language."))
	case content.KindTranslateToSource:
		lipgloss.Fprintln(out, theme.Hint.Render("Translate into your language."))
	}
}

func printOutcome(out io.Writer, o session.Outcome) {
	if o.Correct {
		lipgloss.Fprintln(out, theme.Correct.Render("Correct!"))
		return
	}
	lipgloss.Fprintln(out, theme.Incorrect.Render("Not quite.")+" "+theme.Expected.Render(o.Expected))
	if o.RequeuedAt >= 0 {
		lipgloss.Fprintln(out, theme.Hint.Render("You'll see this one again later."))
	}
}

func printSummary(out io.Writer, s *session.Summary) {
	body := fmt.Sprintf("%s complete\n%s  %.0f%%\n%d questions, %d mistakes",
		strings.ToUpper(string(s.Mode[:1]))+string(s.Mode[1:]),
		components.Stars(s.Stars), s.Percent(),
		s.TotalQuestions, s.MistakeCount)
	lipgloss.Fprintln(out)
	lipgloss.Fprintln(out, theme.Card.Render(body))
}
