package progress

import (
	"context"

	"github.com/abhisek/lingoz/internal/calendar"
	"github.com/abhisek/lingoz/internal/scoring"
	"github.com/abhisek/lingoz/internal/spacedrep"
	"github.com/abhisek/lingoz/internal/streak"
)

// ScoreSource reads committed lesson and exam results.
type ScoreSource interface {
	LessonScores(ctx context.Context) scoring.LessonScores
	ExamScores(ctx context.Context) scoring.ExamScores
}

// StreakSource reads the streak and today's counter.
type StreakSource interface {
	State(ctx context.Context) streak.State
	Today(ctx context.Context, today calendar.Date) int
}

// ReviewSource reads the spaced-repetition store.
type ReviewSource interface {
	DueCount(today calendar.Date) int
	WeeklyHistogram(today calendar.Date) []spacedrep.DayCount
}

// Overview is the learner's dashboard for one day.
type Overview struct {
	Date calendar.Date

	// Streak is the displayed streak; a broken streak shows 0.
	Streak      int
	StreakAlive bool

	TodayCorrect  int
	TodayMistakes int
	DailyGoal     int

	// Weekly holds the seven days ending on Date, oldest first.
	Weekly []spacedrep.DayCount

	DueCount     int
	LessonScores scoring.LessonScores
	ExamScores   scoring.ExamScores
}

// GoalMet reports whether today's correct answers reached the daily goal.
func (o Overview) GoalMet() bool {
	return o.TodayCorrect >= o.DailyGoal
}

// TotalStars sums the best stars of every lesson.
func (o Overview) TotalStars() int {
	n := 0
	for _, s := range o.LessonScores {
		n += s
	}
	return n
}

// PassedExams counts passed unit exams.
func (o Overview) PassedExams() int {
	n := 0
	for _, ok := range o.ExamScores {
		if ok {
			n++
		}
	}
	return n
}

// Aggregator is a read-only view over the scoring, streak and review
// stores.
type Aggregator struct {
	scores  ScoreSource
	streak  StreakSource
	reviews ReviewSource
}

// NewAggregator creates an Aggregator.
func NewAggregator(scores ScoreSource, st StreakSource, reviews ReviewSource) *Aggregator {
	return &Aggregator{scores: scores, streak: st, reviews: reviews}
}

// Overview collects the dashboard for today.
func (a *Aggregator) Overview(ctx context.Context, today calendar.Date) Overview {
	st := a.streak.State(ctx)
	weekly := a.reviews.WeeklyHistogram(today)

	o := Overview{
		Date:         today,
		Streak:       st.Display(today),
		StreakAlive:  st.Alive(today),
		TodayCorrect: a.streak.Today(ctx, today),
		DailyGoal:    streak.DailyGoal,
		Weekly:       weekly,
		DueCount:     a.reviews.DueCount(today),
		LessonScores: a.scores.LessonScores(ctx),
		ExamScores:   a.scores.ExamScores(ctx),
	}
	if n := len(weekly); n > 0 && weekly[n-1].Date.Equal(today) {
		o.TodayMistakes = weekly[n-1].WrongCount
	}
	return o
}
