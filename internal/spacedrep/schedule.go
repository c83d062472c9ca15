package spacedrep

import "github.com/abhisek/lingoz/internal/calendar"

// Intervals maps a Leitner box to the days until its next review.
// Box 0 means new; a wrong answer demotes to box 1, never to 0.
var Intervals = [...]int{0, 1, 3, 7, 14, 30}

// MaxBox is the highest Leitner box.
const MaxBox = len(Intervals) - 1

// FailBox is where a wrong answer always lands.
const FailBox = 1

// NextBox applies the box transition for one answer.
func NextBox(box int, correct bool) int {
	if !correct {
		return FailBox
	}
	return min(clampBox(box)+1, MaxBox)
}

// NextReview returns the due date for an entry that has just moved to box.
func NextReview(box int, today calendar.Date) calendar.Date {
	return today.AddDays(Intervals[clampBox(box)])
}

func clampBox(box int) int {
	return max(0, min(box, MaxBox))
}
