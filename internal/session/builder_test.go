package session

import (
	"errors"
	"slices"
	"testing"

	"github.com/abhisek/lingoz/internal/calendar"
	"github.com/abhisek/lingoz/internal/content"
)

func gendered(id string, g content.Gender) content.Exercise {
	ex := translation(id)
	ex.GenderVariant = g
	return ex
}

func TestFilterGender(t *testing.T) {
	items := []content.Exercise{
		translation("plain"),
		gendered("a", content.GenderA),
		gendered("b", content.GenderB),
	}
	tests := []struct {
		gender content.Gender
		want   []string
	}{
		{content.GenderUnset, []string{"plain", "a", "b"}},
		{content.GenderNeutral, []string{"plain", "a", "b"}},
		{content.GenderA, []string{"plain", "a"}},
		{content.GenderB, []string{"plain", "b"}},
	}
	for _, tt := range tests {
		got := NewQueue(FilterGender(items, tt.gender)).IDs()
		if !slices.Equal(got, tt.want) {
			t.Errorf("FilterGender(%q) = %v, want %v", tt.gender, got, tt.want)
		}
	}
}

func TestBuild_LessonKeepsOrderAndDedupes(t *testing.T) {
	items := append(exercises("e", 3), translation("e2"))
	q, err := NewBuilder(NewRand(1)).Build(ModeLesson, Selection{Exercises: items}, content.GenderUnset)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := q.IDs(); !slices.Equal(got, []string{"e1", "e2", "e3"}) {
		t.Errorf("IDs = %v", got)
	}
}

func TestBuild_EmptyLessonIsNotAnError(t *testing.T) {
	q, err := NewBuilder(NewRand(1)).Build(ModeLesson, Selection{}, content.GenderUnset)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d, want 0", q.Len())
	}
}

func TestBuild_ExamShufflesAndCaps(t *testing.T) {
	items := exercises("e", 40)

	q1, err := NewBuilder(NewRand(7)).Build(ModeExam, Selection{Exercises: items}, content.GenderUnset)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	q2, _ := NewBuilder(NewRand(7)).Build(ModeExam, Selection{Exercises: items}, content.GenderUnset)

	if q1.Len() != MaxExamQuestions {
		t.Fatalf("Len = %d, want %d", q1.Len(), MaxExamQuestions)
	}
	if !slices.Equal(q1.IDs(), q2.IDs()) {
		t.Error("same seed produced different exams")
	}

	inOrder := NewQueue(items[:MaxExamQuestions]).IDs()
	if slices.Equal(q1.IDs(), inOrder) {
		t.Error("exam was not shuffled")
	}

	seen := map[string]bool{}
	for _, id := range q1.IDs() {
		if seen[id] {
			t.Fatalf("duplicate %s in exam", id)
		}
		seen[id] = true
	}

	if items[0].ID != "e1" {
		t.Error("Build mutated the selection")
	}
}

func TestBuild_ExamIsPermutation(t *testing.T) {
	items := exercises("e", 9)
	q, err := NewBuilder(NewRand(3)).Build(ModeExam, Selection{Exercises: items}, content.GenderUnset)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := q.IDs()
	slices.Sort(got)
	want := NewQueue(items).IDs()
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("exam IDs = %v, want permutation of %v", got, want)
	}
}

func TestBuild_EmptyExamAfterFilter(t *testing.T) {
	sel := Selection{Exercises: []content.Exercise{gendered("a", content.GenderA)}}
	_, err := NewBuilder(NewRand(1)).Build(ModeExam, sel, content.GenderB)
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("err = %v, want ErrNoContent", err)
	}
}

func TestBuild_Practice(t *testing.T) {
	items := exercises("e", 12)
	b := NewBuilder(NewRand(5))

	q, err := b.Build(ModePractice, Selection{Exercises: items, Count: 5}, content.GenderUnset)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := q.IDs(); !slices.Equal(got, []string{"e1", "e2", "e3", "e4", "e5"}) {
		t.Errorf("unshuffled practice = %v", got)
	}

	q, err = b.Build(ModePractice, Selection{Exercises: items, Count: 20, Shuffle: true}, content.GenderUnset)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if q.Len() != 12 {
		t.Errorf("Len = %d, want 12", q.Len())
	}
}

func TestBuild_PracticeErrors(t *testing.T) {
	b := NewBuilder(NewRand(1))

	_, err := b.Build(ModePractice, Selection{Exercises: exercises("e", 3), Count: 7}, content.GenderUnset)
	if !errors.Is(err, ErrInvalidCount) {
		t.Errorf("count 7: err = %v, want ErrInvalidCount", err)
	}

	_, err = b.Build(ModePractice, Selection{Count: 10}, content.GenderUnset)
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("empty: err = %v, want ErrNoContent", err)
	}
}

func TestSelections(t *testing.T) {
	c := &content.Course{
		ID: "c",
		Units: []content.Unit{{
			ID: "u1",
			Levels: []content.Level{
				{ID: "l1", Exercises: exercises("a", 2)},
				{ID: "l2", Exercises: exercises("b", 3)},
			},
		}},
	}

	sel, err := LessonSelection(c, "l2")
	if err != nil || len(sel.Exercises) != 3 {
		t.Errorf("LessonSelection = %d items, %v", len(sel.Exercises), err)
	}
	if _, err := LessonSelection(c, "nope"); err == nil {
		t.Error("LessonSelection(unknown) should fail")
	}

	sel, err = ExamSelection(c, "u1")
	if err != nil || len(sel.Exercises) != 5 {
		t.Errorf("ExamSelection = %d items, %v", len(sel.Exercises), err)
	}
	if _, err := ExamSelection(c, "nope"); err == nil {
		t.Error("ExamSelection(unknown) should fail")
	}

	sel = PracticeSelection(c, []string{"l1", "missing"}, 10, true)
	if len(sel.Exercises) != 2 || sel.Count != 10 || !sel.Shuffle {
		t.Errorf("PracticeSelection = %+v", sel)
	}
}

type stubPool struct {
	due     []content.Exercise
	hardest []content.Exercise
	limit   int
}

func (p *stubPool) Due(calendar.Date) []content.Exercise { return p.due }

func (p *stubPool) Hardest(limit int) []content.Exercise {
	p.limit = limit
	return p.hardest
}

func TestReviewSelection(t *testing.T) {
	pool := &stubPool{due: exercises("d", 2), hardest: exercises("h", 1)}
	today := calendar.New(2025, 4, 1)

	sel, err := ReviewSelection(pool, SourceDue, today, 10)
	if err != nil || len(sel.Exercises) != 2 || sel.Count != 10 {
		t.Errorf("due selection = %+v, %v", sel, err)
	}

	sel, err = ReviewSelection(pool, SourceHardest, today, 5)
	if err != nil || len(sel.Exercises) != 1 || pool.limit != 5 {
		t.Errorf("hardest selection = %+v (limit %d), %v", sel, pool.limit, err)
	}

	if _, err := ParseReviewSource("soonest"); err == nil {
		t.Error("ParseReviewSource(soonest) should fail")
	}
	if s, err := ParseReviewSource("hardest"); err != nil || s != SourceHardest {
		t.Errorf("ParseReviewSource(hardest) = %q, %v", s, err)
	}
}
