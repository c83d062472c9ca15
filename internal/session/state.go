package session

import "github.com/abhisek/lingoz/internal/scoring"

// State is a snapshot of a runner. Queue is immutable, so a snapshot is
// unaffected by later requeues.
type State struct {
	ID     string
	Mode   Mode
	Phase  Phase
	Step   Step
	Cursor int
	Queue  Queue

	// TotalQuestions is the queue length at start. It never grows.
	TotalQuestions int

	// MistakeCount counts every wrong submission, repeats included.
	MistakeCount int
}

// Remaining returns how many positions are left including the current one.
func (s State) Remaining() int {
	return max(0, s.Queue.Len()-s.Cursor)
}

// Summary is the result of a finished session.
type Summary struct {
	ID             string
	Mode           Mode
	TotalQuestions int
	MistakeCount   int
	Stars          int

	// Answered counts every submission, requeued repeats included.
	Answered int
}

// Percent returns the first-pass score used for the stars.
func (s Summary) Percent() float64 {
	return scoring.ScorePercent(s.TotalQuestions, s.MistakeCount)
}
