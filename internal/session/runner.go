package session

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/abhisek/lingoz/internal/answer"
	"github.com/abhisek/lingoz/internal/calendar"
	"github.com/abhisek/lingoz/internal/content"
	"github.com/abhisek/lingoz/internal/scoring"
)

var (
	ErrNotActive       = errors.New("session is not active")
	ErrAlreadyAnswered = errors.New("current exercise already answered")
	ErrNotAnswered     = errors.New("current exercise not answered yet")
)

// Phase is the top-level runner state.
type Phase int

const (
	PhaseLoading  Phase = iota // Queue not yet accepted
	PhaseActive                // Serving exercises
	PhaseFinished              // Queue exhausted, score computed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// Step is the sub-state of the current exercise while Active.
type Step int

const (
	StepPresenting Step = iota
	StepAnswered
)

// ReviewRecorder receives every graded answer.
type ReviewRecorder interface {
	RecordOutcome(ctx context.Context, ex content.Exercise, correct bool, today calendar.Date)
}

// StreakRecorder receives correct answers outside exams.
type StreakRecorder interface {
	RecordCorrect(ctx context.Context, today calendar.Date)
}

// Scorer persists lesson and exam results when a session finishes.
type Scorer interface {
	CommitLessonScore(ctx context.Context, lessonID string, stars int) error
	CommitExamPass(ctx context.Context, unitID string) error
}

// AudioPlayer plays an exercise's audio. Playback is fire-and-forget.
type AudioPlayer interface {
	PlayAudio(id string)
}

// Options identify what a session is for.
type Options struct {
	Mode Mode

	// LevelID receives the lesson score. Lessons only.
	LevelID string

	// UnitID receives the exam pass. Exams only.
	UnitID string
}

// Deps are the runner's collaborators. Any of them may be nil.
type Deps struct {
	Reviews ReviewRecorder
	Streak  StreakRecorder
	Scorer  Scorer
	Audio   AudioPlayer
	Rand    *rand.Rand
	Clock   func() time.Time
	Logger  *log.Logger
}

// Outcome is the result of one submitted answer.
type Outcome struct {
	Correct bool

	// Expected is the answer shown to the learner.
	Expected string

	// RequeuedAt is the queue position the exercise was reinserted at, or
	// -1 when it was not requeued.
	RequeuedAt int
}

// Runner drives one session through Loading, Active and Finished. It is
// not safe for concurrent use; one caller drives it at a time.
type Runner struct {
	opts   Options
	deps   Deps
	logger *log.Logger

	id             string
	phase          Phase
	step           Step
	queue          Queue
	cursor         int
	totalQuestions int
	mistakeCount   int
	answered       int
	summary        *Summary
}

// NewRunner creates a runner in PhaseLoading.
func NewRunner(opts Options, deps Deps) *Runner {
	if deps.Rand == nil {
		deps.Rand = NewRand(0)
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		opts:   opts,
		deps:   deps,
		logger: logger.WithPrefix("session"),
		id:     uuid.New().String(),
	}
}

// ID returns the session ID.
func (r *Runner) ID() string { return r.id }

// Start accepts the queue and enters PhaseActive. The queue length becomes
// the fixed scoring denominator.
//
// An empty lesson finishes at once. An empty exam or practice queue returns
// ErrNoContent and the runner stays in PhaseLoading.
func (r *Runner) Start(ctx context.Context, q Queue) error {
	if r.phase != PhaseLoading {
		return errors.New("session already started")
	}
	if q.Len() == 0 && r.opts.Mode != ModeLesson {
		return ErrNoContent
	}

	r.queue = q
	r.cursor = 0
	r.totalQuestions = q.Len()
	r.step = StepPresenting
	r.phase = PhaseActive
	r.logger.Info("session started", "id", r.id, "mode", r.opts.Mode, "questions", r.totalQuestions)

	if q.Len() == 0 {
		r.finish(ctx)
	}
	return nil
}

// StartFromHandoff starts a session from a handoff written by SaveHandoff,
// adopting its ID and mode.
func (r *Runner) StartFromHandoff(ctx context.Context, h Handoff) error {
	if h.ID != "" {
		r.id = h.ID
	}
	if h.Mode != "" {
		r.opts.Mode = h.Mode
	}
	return r.Start(ctx, NewQueue(h.Exercises))
}

// Current returns the exercise being presented.
func (r *Runner) Current() (content.Exercise, bool) {
	if r.phase != PhaseActive || r.cursor >= r.queue.Len() {
		return content.Exercise{}, false
	}
	return r.queue.At(r.cursor), true
}

// Submit grades in against the current exercise.
//
// A wrong answer counts a mistake and requeues the exercise later in the
// session. A correct answer plays its audio and, outside exams, counts
// toward the daily streak. Both are recorded in the review store.
func (r *Runner) Submit(ctx context.Context, in answer.Input) (Outcome, error) {
	if r.phase != PhaseActive {
		return Outcome{}, ErrNotActive
	}
	if r.step == StepAnswered {
		return Outcome{}, ErrAlreadyAnswered
	}

	ex := r.queue.At(r.cursor)
	correct := answer.Check(ex, in)
	today := calendar.DateOf(r.deps.Clock())
	out := Outcome{Correct: correct, Expected: answer.Expected(ex), RequeuedAt: -1}

	r.step = StepAnswered
	r.answered++
	if r.deps.Reviews != nil {
		r.deps.Reviews.RecordOutcome(ctx, ex, correct, today)
	}

	if correct {
		if r.opts.Mode != ModeExam && r.deps.Streak != nil {
			r.deps.Streak.RecordCorrect(ctx, today)
		}
		r.play(ex)
	} else {
		r.mistakeCount++
		pos := RequeuePosition(r.deps.Rand, r.cursor, r.queue.Len())
		r.queue = r.queue.InsertAt(pos, ex)
		out.RequeuedAt = pos
	}

	r.logger.Debug("answer", "exercise", ex.ID, "correct", correct, "requeued_at", out.RequeuedAt)
	return out, nil
}

// RequeuePosition picks where a missed exercise at cursor goes in a queue
// of n. With r items after the cursor it lands r' items later, r' drawn
// uniformly from [1, r], so never immediately next; with none it appends.
func RequeuePosition(rng *rand.Rand, cursor, n int) int {
	remaining := n - 1 - cursor
	if remaining <= 0 {
		return n
	}
	offset := 1 + rng.IntN(remaining)
	return cursor + 1 + offset
}

// Advance moves past the answered exercise. When the queue is exhausted the
// runner finishes, commits results, and returns the summary; otherwise the
// summary is nil.
func (r *Runner) Advance(ctx context.Context) (*Summary, error) {
	if r.phase != PhaseActive {
		return nil, ErrNotActive
	}
	if r.step != StepAnswered {
		return nil, ErrNotAnswered
	}
	r.cursor++
	r.step = StepPresenting
	if r.cursor < r.queue.Len() {
		return nil, nil
	}
	return r.finish(ctx), nil
}

func (r *Runner) finish(ctx context.Context) *Summary {
	r.phase = PhaseFinished
	stars := scoring.ComputeStars(r.totalQuestions, r.mistakeCount)
	r.summary = &Summary{
		ID:             r.id,
		Mode:           r.opts.Mode,
		TotalQuestions: r.totalQuestions,
		MistakeCount:   r.mistakeCount,
		Stars:          stars,
		Answered:       r.answered,
	}

	if r.deps.Scorer != nil {
		switch r.opts.Mode {
		case ModeLesson:
			if err := r.deps.Scorer.CommitLessonScore(ctx, r.opts.LevelID, stars); err != nil {
				r.logger.Warn("lesson score not saved", "level", r.opts.LevelID, "err", err)
			}
		case ModeExam:
			if err := r.deps.Scorer.CommitExamPass(ctx, r.opts.UnitID); err != nil {
				r.logger.Warn("exam pass not saved", "unit", r.opts.UnitID, "err", err)
			}
		}
	}

	r.logger.Info("session finished", "id", r.id, "mode", r.opts.Mode,
		"stars", stars, "mistakes", r.mistakeCount, "questions", r.totalQuestions)
	return r.summary
}

// PlayAudio plays the current exercise's audio on demand.
func (r *Runner) PlayAudio() {
	if ex, ok := r.Current(); ok {
		r.play(ex)
	}
}

func (r *Runner) play(ex content.Exercise) {
	if r.deps.Audio == nil {
		return
	}
	if id := ex.AudioID(); id != "" {
		r.deps.Audio.PlayAudio(id)
	}
}

// Summary returns the final summary once the runner has finished.
func (r *Runner) Summary() (*Summary, bool) {
	return r.summary, r.summary != nil
}

// State returns a point-in-time snapshot of the runner.
func (r *Runner) State() State {
	return State{
		ID:             r.id,
		Mode:           r.opts.Mode,
		Phase:          r.phase,
		Step:           r.step,
		Cursor:         r.cursor,
		Queue:          r.queue,
		TotalQuestions: r.totalQuestions,
		MistakeCount:   r.mistakeCount,
	}
}
