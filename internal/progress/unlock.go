package progress

import (
	"github.com/abhisek/lingoz/internal/content"
	"github.com/abhisek/lingoz/internal/scoring"
)

// LevelState is a level's state relative to the learner.
type LevelState int

const (
	StateLocked    LevelState = iota // Previous level has no stars yet
	StateAvailable                   // Unlocked, never completed
	StateStarted                     // Completed with fewer than MaxStars
	StatePerfect                     // Completed with MaxStars
)

// Icon returns the display icon for a level state.
func (s LevelState) Icon() string {
	switch s {
	case StateLocked:
		return "🔒"
	case StateAvailable:
		return "🔓"
	case StateStarted:
		return "📖"
	case StatePerfect:
		return "⭐"
	default:
		return "?"
	}
}

// Label returns the display label for a level state.
func (s LevelState) Label() string {
	switch s {
	case StateLocked:
		return "Locked"
	case StateAvailable:
		return "Available"
	case StateStarted:
		return "Started"
	case StatePerfect:
		return "Perfect"
	default:
		return "Unknown"
	}
}

// UnitUnlocked reports whether unitID can be played. The first unit is
// always open; each later one opens when the previous unit's exam passes.
func UnitUnlocked(c *content.Course, unitID string, exams scoring.ExamScores) bool {
	for i, u := range c.Units {
		if u.ID != unitID {
			continue
		}
		if i == 0 {
			return true
		}
		return exams[c.Units[i-1].ID]
	}
	return false
}

// LevelUnlocked reports whether levelID can be played within its unit. The
// first level is always open; each later one opens once the previous level
// has at least one star.
func LevelUnlocked(u content.Unit, levelID string, lessons scoring.LessonScores) bool {
	for i, l := range u.Levels {
		if l.ID != levelID {
			continue
		}
		if i == 0 {
			return true
		}
		return lessons[u.Levels[i-1].ID] > 0
	}
	return false
}

// StateOf resolves the display state of levelID.
func StateOf(u content.Unit, levelID string, lessons scoring.LessonScores) LevelState {
	if !LevelUnlocked(u, levelID, lessons) {
		return StateLocked
	}
	stars, played := lessons[levelID]
	switch {
	case !played:
		return StateAvailable
	case stars >= scoring.MaxStars:
		return StatePerfect
	default:
		return StateStarted
	}
}

// UnitProgress summarizes one unit for display.
type UnitProgress struct {
	UnitID     string
	Title      string
	Unlocked   bool
	ExamPassed bool
	Stars      int
	MaxStars   int
	Levels     []LevelProgress
}

// LevelProgress summarizes one level for display.
type LevelProgress struct {
	LevelID string
	Title   string
	Stars   int
	State   LevelState
}

// Course returns per-unit progress in course order.
func Course(c *content.Course, lessons scoring.LessonScores, exams scoring.ExamScores) []UnitProgress {
	out := make([]UnitProgress, 0, len(c.Units))
	for _, u := range c.Units {
		up := UnitProgress{
			UnitID:     u.ID,
			Title:      u.Title,
			Unlocked:   UnitUnlocked(c, u.ID, exams),
			ExamPassed: exams[u.ID],
			MaxStars:   len(u.Levels) * scoring.MaxStars,
		}
		for _, l := range u.Levels {
			state := StateOf(u, l.ID, lessons)
			if !up.Unlocked {
				state = StateLocked
			}
			up.Stars += lessons[l.ID]
			up.Levels = append(up.Levels, LevelProgress{
				LevelID: l.ID,
				Title:   l.Title,
				Stars:   lessons[l.ID],
				State:   state,
			})
		}
		out = append(out, up)
	}
	return out
}
