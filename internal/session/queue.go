package session

import "github.com/abhisek/lingoz/internal/content"

// Queue is an ordered, immutable sequence of exercises. Operations that
// change the order return a new Queue and leave the receiver untouched, so
// snapshots taken earlier never observe a later requeue.
type Queue struct {
	items []content.Exercise
}

// NewQueue copies items into a Queue.
func NewQueue(items []content.Exercise) Queue {
	return Queue{items: append([]content.Exercise(nil), items...)}
}

// Len returns the number of positions in the queue.
func (q Queue) Len() int { return len(q.items) }

// At returns the exercise at position i.
func (q Queue) At(i int) content.Exercise { return q.items[i] }

// InsertAt returns a queue with ex placed at position i. Positions past the
// end append.
func (q Queue) InsertAt(i int, ex content.Exercise) Queue {
	i = max(0, min(i, len(q.items)))
	out := make([]content.Exercise, 0, len(q.items)+1)
	out = append(out, q.items[:i]...)
	out = append(out, ex)
	out = append(out, q.items[i:]...)
	return Queue{items: out}
}

// Items returns a copy of the exercises in order.
func (q Queue) Items() []content.Exercise {
	return append([]content.Exercise(nil), q.items...)
}

// IDs returns the exercise IDs in order.
func (q Queue) IDs() []string {
	ids := make([]string, len(q.items))
	for i, ex := range q.items {
		ids[i] = ex.ID
	}
	return ids
}
