package session

import (
	"slices"
	"testing"
)

func TestQueue_InsertAtReturnsNewQueue(t *testing.T) {
	q := NewQueue(exercises("e", 3))
	q2 := q.InsertAt(1, translation("x"))

	if got := q.IDs(); !slices.Equal(got, []string{"e1", "e2", "e3"}) {
		t.Errorf("original changed: %v", got)
	}
	if got := q2.IDs(); !slices.Equal(got, []string{"e1", "x", "e2", "e3"}) {
		t.Errorf("inserted = %v", got)
	}
}

func TestQueue_InsertAtPastEndAppends(t *testing.T) {
	q := NewQueue(exercises("e", 2)).InsertAt(10, translation("x"))
	if got := q.IDs(); !slices.Equal(got, []string{"e1", "e2", "x"}) {
		t.Errorf("IDs = %v", got)
	}
}

func TestQueue_NewQueueCopies(t *testing.T) {
	items := exercises("e", 2)
	q := NewQueue(items)
	items[0] = translation("changed")
	if q.At(0).ID != "e1" {
		t.Errorf("At(0) = %s, want e1", q.At(0).ID)
	}

	out := q.Items()
	out[1] = translation("changed")
	if q.At(1).ID != "e2" {
		t.Errorf("At(1) = %s, want e2", q.At(1).ID)
	}
}
