package scoring

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/abhisek/lingoz/internal/persist"
)

// LessonScores maps a level ID to the best stars ever earned on it.
type LessonScores map[string]int

// ExamScores maps a unit ID to whether its exam was passed.
type ExamScores map[string]bool

// Engine owns the lesson-score and exam-score records.
type Engine struct {
	db     *persist.Store
	logger *log.Logger
}

// NewEngine creates a scoring engine over db.
func NewEngine(db *persist.Store) *Engine {
	return &Engine{db: db, logger: db.Logger().WithPrefix("scoring")}
}

// CommitLessonScore stores stars for lessonID if they are at least the
// stored best. The stored value never decreases.
func (e *Engine) CommitLessonScore(ctx context.Context, lessonID string, stars int) error {
	stars = max(0, min(stars, MaxStars))
	_, err := persist.Update(ctx, e.db, persist.KeyLessonScores, func(m *LessonScores) bool {
		if *m == nil {
			*m = make(LessonScores)
		}
		if best, ok := (*m)[lessonID]; ok && stars < best {
			return false
		}
		(*m)[lessonID] = stars
		return true
	})
	if err != nil {
		return err
	}
	e.logger.Debug("lesson score committed", "lesson", lessonID, "stars", stars)
	return nil
}

// CommitExamPass marks unitID's exam as passed.
func (e *Engine) CommitExamPass(ctx context.Context, unitID string) error {
	_, err := persist.Update(ctx, e.db, persist.KeyExamScores, func(m *ExamScores) bool {
		if *m == nil {
			*m = make(ExamScores)
		}
		if (*m)[unitID] {
			return false
		}
		(*m)[unitID] = true
		return true
	})
	if err != nil {
		return err
	}
	e.logger.Debug("exam pass committed", "unit", unitID)
	return nil
}

// LessonScores returns the stored best stars per level.
func (e *Engine) LessonScores(ctx context.Context) LessonScores {
	m, _ := persist.Load[LessonScores](ctx, e.db, persist.KeyLessonScores)
	if m == nil {
		m = make(LessonScores)
	}
	return m
}

// ExamScores returns the stored exam passes per unit.
func (e *Engine) ExamScores(ctx context.Context) ExamScores {
	m, _ := persist.Load[ExamScores](ctx, e.db, persist.KeyExamScores)
	if m == nil {
		m = make(ExamScores)
	}
	return m
}
