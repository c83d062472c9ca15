package scoring

// MaxStars is the best rating a session can earn.
const MaxStars = 3

// Star thresholds on the first-pass score percentage.
const (
	TwoStarPercent = 75
	OneStarPercent = 50
)

// ScorePercent is the share of the original questions answered without a
// mistake. Every wrong attempt counts, including repeats of a requeued
// exercise. An empty session scores 100.
func ScorePercent(totalQuestions, mistakeCount int) float64 {
	if totalQuestions <= 0 {
		return 100
	}
	correct := max(0, totalQuestions-mistakeCount)
	return float64(correct) / float64(totalQuestions) * 100
}

// ComputeStars converts a session outcome into a 0-3 star rating.
func ComputeStars(totalQuestions, mistakeCount int) int {
	score := ScorePercent(totalQuestions, mistakeCount)
	switch {
	case score >= 100:
		return 3
	case score >= TwoStarPercent:
		return 2
	case score >= OneStarPercent:
		return 1
	default:
		return 0
	}
}
