package spacedrep

import (
	"context"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/abhisek/lingoz/internal/calendar"
	"github.com/abhisek/lingoz/internal/content"
	"github.com/abhisek/lingoz/internal/persist"
)

// vocabFile is the persisted vocab database. Entries are kept as a list so
// insertion order survives a round trip.
type vocabFile struct {
	Version int          `json:"version"`
	Entries []VocabEntry `json:"entries"`
}

const vocabFileVersion = 1

// Store owns the Leitner state of every exercise ever answered.
//
// The in-memory copy is authoritative for the running process. Each
// RecordOutcome also merges the changed entry into the persisted database
// under the key's lock; if that write fails the error is logged and the
// session carries on.
type Store struct {
	db     *persist.Store
	logger *log.Logger

	mu      sync.Mutex
	entries map[string]*VocabEntry
	order   []string
}

// Open loads the vocab database. A missing or corrupt record starts empty.
func Open(ctx context.Context, db *persist.Store) *Store {
	s := &Store{
		db:      db,
		logger:  db.Logger().WithPrefix("spacedrep"),
		entries: make(map[string]*VocabEntry),
	}
	file, _ := persist.Load[vocabFile](ctx, db, persist.KeyVocab)
	s.loadFile(file)
	return s
}

func (s *Store) loadFile(file vocabFile) {
	for i := range file.Entries {
		e := file.Entries[i]
		if e.ExerciseID == "" {
			continue
		}
		e.Box = clampBox(e.Box)
		if _, dup := s.entries[e.ExerciseID]; !dup {
			s.order = append(s.order, e.ExerciseID)
		}
		s.entries[e.ExerciseID] = &e
	}
}

// RecordOutcome applies one answer to the exercise's entry, creating it on
// first sight, and attempts a durable write.
func (s *Store) RecordOutcome(ctx context.Context, ex content.Exercise, correct bool, today calendar.Date) {
	s.mu.Lock()
	e, ok := s.entries[ex.ID]
	if !ok {
		e = &VocabEntry{ExerciseID: ex.ID}
		s.entries[ex.ID] = e
		s.order = append(s.order, ex.ID)
	}
	e.Exercise = ex
	e.apply(correct, today)
	box, next := e.Box, e.NextReviewDate
	s.mu.Unlock()

	s.logger.Debug("recorded outcome", "exercise", ex.ID, "correct", correct, "box", box, "next", next)

	// The entry is copied inside the write so that, with writes to the key
	// serialized, the last write always carries the latest state.
	_, err := persist.Update(ctx, s.db, persist.KeyVocab, func(f *vocabFile) bool {
		snapshot, ok := s.Entry(ex.ID)
		if !ok {
			return false
		}
		f.Version = vocabFileVersion
		for i := range f.Entries {
			if f.Entries[i].ExerciseID == snapshot.ExerciseID {
				f.Entries[i] = snapshot
				return true
			}
		}
		f.Entries = append(f.Entries, snapshot)
		return true
	})
	if err != nil {
		s.logger.Warn("vocab write failed", "exercise", ex.ID, "err", err)
	}
}

// Entry returns a copy of the entry for an exercise.
func (s *Store) Entry(exerciseID string) (VocabEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[exerciseID]
	if !ok {
		return VocabEntry{}, false
	}
	return e.clone(), true
}

// Entries returns copies of all entries in insertion order.
func (s *Store) Entries() []VocabEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]VocabEntry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id].clone())
	}
	return out
}

// Due returns the exercises whose next review date is today or earlier,
// in insertion order.
func (s *Store) Due(today calendar.Date) []content.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []content.Exercise
	for _, id := range s.order {
		if e := s.entries[id]; e.IsDue(today) {
			out = append(out, e.Exercise)
		}
	}
	return out
}

// DueCount returns len(Due(today)) without copying exercises.
func (s *Store) DueCount(today calendar.Date) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if e.IsDue(today) {
			n++
		}
	}
	return n
}

// Hardest returns up to limit exercises that were ever missed, most
// mistakes first; ties go to the most recent mistake, then to the ID.
func (s *Store) Hardest(limit int) []content.Exercise {
	s.mu.Lock()
	var missed []*VocabEntry
	for _, id := range s.order {
		if e := s.entries[id]; e.MistakeCount > 0 {
			missed = append(missed, e)
		}
	}
	sort.SliceStable(missed, func(i, j int) bool {
		a, b := missed[i], missed[j]
		if a.MistakeCount != b.MistakeCount {
			return a.MistakeCount > b.MistakeCount
		}
		if c := a.LastMistake.Compare(b.LastMistake); c != 0 {
			return c > 0
		}
		return a.ExerciseID < b.ExerciseID
	})
	if limit >= 0 && len(missed) > limit {
		missed = missed[:limit]
	}
	out := make([]content.Exercise, len(missed))
	for i, e := range missed {
		out[i] = e.Exercise
	}
	s.mu.Unlock()
	return out
}

// DayCount is one bar of the weekly histogram.
type DayCount struct {
	Date         calendar.Date
	CorrectCount int
	WrongCount   int
}

// HistogramDays is the width of the weekly histogram.
const HistogramDays = 7

// WeeklyHistogram returns correct and wrong counts for the seven days
// ending today, oldest first. Days without answers are present with zeros.
func (s *Store) WeeklyHistogram(today calendar.Date) []DayCount {
	days := make([]DayCount, HistogramDays)
	index := make(map[string]int, HistogramDays)
	for i := range days {
		d := today.AddDays(i - (HistogramDays - 1))
		days[i].Date = d
		index[d.String()] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		for _, h := range e.History {
			i, ok := index[h.Date.String()]
			if !ok {
				continue
			}
			switch h.Result {
			case ResultCorrect:
				days[i].CorrectCount++
			case ResultWrong:
				days[i].WrongCount++
			}
		}
	}
	return days
}

// Reset forgets every entry, in memory and in storage.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string]*VocabEntry)
	s.order = nil
	s.mu.Unlock()
	return s.db.Remove(ctx, persist.KeyVocab)
}
