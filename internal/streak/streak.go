package streak

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/abhisek/lingoz/internal/calendar"
	"github.com/abhisek/lingoz/internal/persist"
)

// DailyGoal is the number of correct answers that makes a day count
// toward the streak.
const DailyGoal = 15

// State is the persisted streak.
type State struct {
	CurrentStreak  int           `json:"current_streak"`
	LastStreakDate calendar.Date `json:"last_streak_date"`
}

// DailyCounter counts correct answers on a single day.
type DailyCounter struct {
	Date  calendar.Date `json:"date"`
	Count int           `json:"count"`
}

// CountOn returns the counter's value for day; a counter from another day
// reads as zero.
func (c DailyCounter) CountOn(day calendar.Date) int {
	if !c.Date.Equal(day) {
		return 0
	}
	return c.Count
}

// Advance returns the state after today first reaches DailyGoal: the
// streak grows if the last qualifying day was yesterday, otherwise it
// restarts at 1. A second call for the same day changes nothing.
func (s State) Advance(today calendar.Date) State {
	switch {
	case s.LastStreakDate.Equal(today):
		return s
	case !s.LastStreakDate.IsZero() && s.LastStreakDate.AddDays(1).Equal(today):
		s.CurrentStreak++
	default:
		s.CurrentStreak = 1
	}
	s.LastStreakDate = today
	return s
}

// Alive reports whether the streak can still be extended: the last
// qualifying day is today or yesterday.
func (s State) Alive(today calendar.Date) bool {
	if s.CurrentStreak == 0 || s.LastStreakDate.IsZero() {
		return false
	}
	return !s.LastStreakDate.AddDays(1).Before(today)
}

// Display returns the streak to show on today; a broken streak shows 0.
func (s State) Display(today calendar.Date) int {
	if !s.Alive(today) {
		return 0
	}
	return s.CurrentStreak
}

// Tracker owns the daily counter and streak records.
type Tracker struct {
	db     *persist.Store
	logger *log.Logger
}

// NewTracker creates a Tracker over db.
func NewTracker(db *persist.Store) *Tracker {
	return &Tracker{db: db, logger: db.Logger().WithPrefix("streak")}
}

// RecordCorrect counts one correct answer on today. When the count first
// reaches DailyGoal the streak advances. Write failures are logged and
// swallowed.
func (t *Tracker) RecordCorrect(ctx context.Context, today calendar.Date) {
	counter, err := persist.Update(ctx, t.db, persist.KeyDailyProgress, func(c *DailyCounter) bool {
		if !c.Date.Equal(today) {
			*c = DailyCounter{Date: today}
		}
		c.Count++
		return true
	})
	if err != nil {
		t.logger.Warn("daily counter write failed", "err", err)
		return
	}
	if counter.Count != DailyGoal {
		return
	}

	st, err := persist.Update(ctx, t.db, persist.KeyStreak, func(s *State) bool {
		if s.LastStreakDate.Equal(today) {
			return false
		}
		*s = s.Advance(today)
		return true
	})
	if err != nil {
		t.logger.Warn("streak write failed", "err", err)
		return
	}
	t.logger.Info("daily goal reached", "streak", st.CurrentStreak, "date", today)
}

// State returns the stored streak.
func (t *Tracker) State(ctx context.Context) State {
	s, _ := persist.Load[State](ctx, t.db, persist.KeyStreak)
	return s
}

// Today returns the number of correct answers counted on today.
func (t *Tracker) Today(ctx context.Context, today calendar.Date) int {
	c, _ := persist.Load[DailyCounter](ctx, t.db, persist.KeyDailyProgress)
	return c.CountOn(today)
}
