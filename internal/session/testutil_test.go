package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/lingoz/internal/answer"
	"github.com/abhisek/lingoz/internal/calendar"
	"github.com/abhisek/lingoz/internal/content"
)

var testNow = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func translation(id string) content.Exercise {
	return content.Exercise{
		ID:            id,
		Kind:          content.KindTranslateToTarget,
		Prompt:        "prompt " + id,
		CorrectAnswer: "answer " + id,
	}
}

func exercises(prefix string, n int) []content.Exercise {
	out := make([]content.Exercise, n)
	for i := range out {
		out[i] = translation(fmt.Sprintf("%s%d", prefix, i+1))
	}
	return out
}

func right(ex content.Exercise) answer.Input { return answer.Text(ex.CorrectAnswer) }

func wrong() answer.Input { return answer.Text("definitely not it") }

type outcome struct {
	id      string
	correct bool
	day     calendar.Date
}

type fakeReviews struct{ got []outcome }

func (f *fakeReviews) RecordOutcome(_ context.Context, ex content.Exercise, correct bool, today calendar.Date) {
	f.got = append(f.got, outcome{ex.ID, correct, today})
}

type fakeStreak struct{ calls int }

func (f *fakeStreak) RecordCorrect(context.Context, calendar.Date) { f.calls++ }

type fakeScorer struct {
	lessons map[string]int
	exams   map[string]bool
	fail    bool
}

func newFakeScorer() *fakeScorer {
	return &fakeScorer{lessons: map[string]int{}, exams: map[string]bool{}}
}

func (f *fakeScorer) CommitLessonScore(_ context.Context, id string, stars int) error {
	if f.fail {
		return errors.New("disk full")
	}
	f.lessons[id] = stars
	return nil
}

func (f *fakeScorer) CommitExamPass(_ context.Context, id string) error {
	if f.fail {
		return errors.New("disk full")
	}
	f.exams[id] = true
	return nil
}

type fakeAudio struct{ played []string }

func (f *fakeAudio) PlayAudio(id string) { f.played = append(f.played, id) }
