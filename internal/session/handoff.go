package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lingoz/internal/content"
	"github.com/abhisek/lingoz/internal/persist"
)

// Handoff is a built practice queue parked in storage for the runner to
// pick up. It is read once.
type Handoff struct {
	ID        string             `json:"id"`
	Mode      Mode               `json:"mode"`
	Exercises []content.Exercise `json:"exercises"`
	CreatedAt time.Time          `json:"created_at"`
}

// SaveHandoff writes q as the current practice session, replacing any
// earlier one.
func SaveHandoff(ctx context.Context, db *persist.Store, mode Mode, q Queue) (Handoff, error) {
	h := Handoff{
		ID:        uuid.New().String(),
		Mode:      mode,
		Exercises: q.Items(),
		CreatedAt: time.Now().UTC(),
	}
	if err := db.Save(ctx, persist.KeyPracticeSession, h); err != nil {
		return h, fmt.Errorf("save handoff: %w", err)
	}
	return h, nil
}

// TakeHandoff reads and removes the current practice session. ok is false
// when there is none or it is unreadable.
func TakeHandoff(ctx context.Context, db *persist.Store) (Handoff, bool, error) {
	h, ok, err := persist.Take[Handoff](ctx, db, persist.KeyPracticeSession)
	if err != nil {
		return h, ok, fmt.Errorf("take handoff: %w", err)
	}
	return h, ok, nil
}
