package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/abhisek/lingoz/internal/calendar"
	"github.com/abhisek/lingoz/internal/content"
)

// Mode is the kind of session being run.
type Mode string

const (
	ModeLesson   Mode = "lesson"
	ModeExam     Mode = "exam"
	ModePractice Mode = "practice"
)

// MaxExamQuestions caps the length of an exam queue.
const MaxExamQuestions = 30

// PracticeSizes are the question counts a practice session may ask for.
var PracticeSizes = []int{5, 10, 20, 30}

// DefaultPracticeSize is used when no count is given.
const DefaultPracticeSize = 10

var (
	// ErrNoContent means the selection was empty after filtering, so no
	// session can start.
	ErrNoContent = errors.New("no exercises match the selection")

	// ErrInvalidCount means a practice count outside PracticeSizes.
	ErrInvalidCount = errors.New("invalid practice question count")
)

// Selection is the raw material for one session queue.
type Selection struct {
	Exercises []content.Exercise

	// Count caps a practice queue. Must be one of PracticeSizes.
	Count int

	// Shuffle randomizes a practice queue.
	Shuffle bool
}

// NewRand returns a seeded random source. Seed 0 picks one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Builder turns a Selection into a Queue for a given mode.
type Builder struct {
	rng *rand.Rand
}

// NewBuilder creates a Builder drawing shuffles from rng. A nil rng gets a
// clock-seeded source.
func NewBuilder(rng *rand.Rand) *Builder {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Builder{rng: rng}
}

// Build produces the session queue.
//
// Lessons keep authored order. Exams are shuffled and capped at
// MaxExamQuestions. Practice keeps input order unless Shuffle is set and is
// truncated to Count. Every mode drops exercises the gender filter rejects
// and repeated positions of the same exercise.
//
// An empty lesson is not an error; the runner finishes it immediately. An
// empty exam or practice queue returns ErrNoContent.
func (b *Builder) Build(mode Mode, sel Selection, gender content.Gender) (Queue, error) {
	items := dedupe(FilterGender(sel.Exercises, gender))

	switch mode {
	case ModeLesson:
		return NewQueue(items), nil

	case ModeExam:
		if len(items) == 0 {
			return Queue{}, fmt.Errorf("exam: %w", ErrNoContent)
		}
		b.shuffle(items)
		if len(items) > MaxExamQuestions {
			items = items[:MaxExamQuestions]
		}
		return Queue{items: items}, nil

	case ModePractice:
		if !slices.Contains(PracticeSizes, sel.Count) {
			return Queue{}, fmt.Errorf("%w: %d (want one of %v)", ErrInvalidCount, sel.Count, PracticeSizes)
		}
		if len(items) == 0 {
			return Queue{}, fmt.Errorf("practice: %w", ErrNoContent)
		}
		if sel.Shuffle {
			b.shuffle(items)
		}
		if len(items) > sel.Count {
			items = items[:sel.Count]
		}
		return Queue{items: items}, nil
	}
	return Queue{}, fmt.Errorf("unknown session mode %q", mode)
}

// shuffle is an in-place Fisher–Yates permutation.
func (b *Builder) shuffle(items []content.Exercise) {
	for i := len(items) - 1; i > 0; i-- {
		j := b.rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// FilterGender drops exercises tagged for a gender other than g. Untagged
// exercises always pass, and an unset or neutral g passes everything.
func FilterGender(items []content.Exercise, g content.Gender) []content.Exercise {
	out := make([]content.Exercise, 0, len(items))
	for _, ex := range items {
		if ex.GenderVariant == content.GenderUnset || g.AcceptsAll() || ex.GenderVariant == g {
			out = append(out, ex)
		}
	}
	return out
}

func dedupe(items []content.Exercise) []content.Exercise {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, ex := range items {
		if seen[ex.ID] {
			continue
		}
		seen[ex.ID] = true
		out = append(out, ex)
	}
	return out
}

// LessonSelection selects every exercise of one level.
func LessonSelection(c *content.Course, levelID string) (Selection, error) {
	lvl, _, ok := c.Level(levelID)
	if !ok {
		return Selection{}, fmt.Errorf("unknown level %q", levelID)
	}
	return Selection{Exercises: lvl.Exercises}, nil
}

// ExamSelection selects the union of every level in one unit.
func ExamSelection(c *content.Course, unitID string) (Selection, error) {
	u, ok := c.Unit(unitID)
	if !ok {
		return Selection{}, fmt.Errorf("unknown unit %q", unitID)
	}
	return Selection{Exercises: u.Exercises()}, nil
}

// PracticeSelection selects the union of the named levels. Unknown level
// IDs are skipped.
func PracticeSelection(c *content.Course, levelIDs []string, count int, shuffle bool) Selection {
	var items []content.Exercise
	for _, lvl := range c.Levels(levelIDs...) {
		items = append(items, lvl.Exercises...)
	}
	return Selection{Exercises: items, Count: count, Shuffle: shuffle}
}

// ReviewSource names where review practice draws its exercises from.
type ReviewSource string

const (
	SourceDue     ReviewSource = "due"
	SourceHardest ReviewSource = "hardest"
)

// ParseReviewSource validates a review source name.
func ParseReviewSource(s string) (ReviewSource, error) {
	switch ReviewSource(s) {
	case SourceDue, SourceHardest:
		return ReviewSource(s), nil
	}
	return "", fmt.Errorf("unknown review source %q (want due or hardest)", s)
}

// ReviewPool is the read side of the spaced-repetition store.
type ReviewPool interface {
	Due(today calendar.Date) []content.Exercise
	Hardest(limit int) []content.Exercise
}

// ReviewSelection selects practice material from the review pool.
func ReviewSelection(pool ReviewPool, source ReviewSource, today calendar.Date, count int) (Selection, error) {
	switch source {
	case SourceDue:
		return Selection{Exercises: pool.Due(today), Count: count}, nil
	case SourceHardest:
		return Selection{Exercises: pool.Hardest(count), Count: count}, nil
	}
	return Selection{}, fmt.Errorf("unknown review source %q", source)
}
