package spacedrep

import (
	"github.com/abhisek/lingoz/internal/calendar"
	"github.com/abhisek/lingoz/internal/content"
)

// Result is the outcome of one answer.
type Result string

const (
	ResultCorrect Result = "correct"
	ResultWrong   Result = "wrong"
)

// HistoryItem is one answer in an entry's append-only history.
type HistoryItem struct {
	Date   calendar.Date `json:"date"`
	Result Result        `json:"result"`
}

// VocabEntry is the review state of one exercise.
type VocabEntry struct {
	ExerciseID     string           `json:"exercise_id"`
	Exercise       content.Exercise `json:"exercise"`
	Box            int              `json:"box"`
	NextReviewDate calendar.Date    `json:"next_review_date"`
	MistakeCount   int              `json:"mistake_count"`
	SuccessCount   int              `json:"success_count"`
	LastMistake    calendar.Date    `json:"last_mistake,omitempty"`
	History        []HistoryItem    `json:"history"`
}

// IsDue reports whether the entry should be reviewed on today.
func (e *VocabEntry) IsDue(today calendar.Date) bool {
	return !e.NextReviewDate.After(today)
}

// OverdueDays returns how many days past due the entry is; 0 if not due.
func (e *VocabEntry) OverdueDays(today calendar.Date) int {
	if !e.IsDue(today) {
		return 0
	}
	return e.NextReviewDate.DaysUntil(today)
}

// apply records one answer. The new due date depends only on the new box
// and today.
func (e *VocabEntry) apply(correct bool, today calendar.Date) {
	e.Box = NextBox(e.Box, correct)
	e.NextReviewDate = NextReview(e.Box, today)

	result := ResultCorrect
	if correct {
		e.SuccessCount++
	} else {
		e.MistakeCount++
		e.LastMistake = today
		result = ResultWrong
	}
	e.History = append(e.History, HistoryItem{Date: today, Result: result})
}

func (e *VocabEntry) clone() VocabEntry {
	c := *e
	c.History = append([]HistoryItem(nil), e.History...)
	return c
}

// ReviewStatus describes an entry's review status for display.
type ReviewStatus string

const (
	ReviewNew     ReviewStatus = "new"
	ReviewNotDue  ReviewStatus = "not_due"
	ReviewDue     ReviewStatus = "due"
	ReviewOverdue ReviewStatus = "overdue"
)

// Status returns the review status for display.
func (e *VocabEntry) Status(today calendar.Date) ReviewStatus {
	switch {
	case e.Box == 0:
		return ReviewNew
	case !e.IsDue(today):
		return ReviewNotDue
	case e.OverdueDays(today) > 0:
		return ReviewOverdue
	default:
		return ReviewDue
	}
}
