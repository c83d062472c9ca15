package persist

import (
	"context"
	"sync"
)

// Keys of the logical records. Each record is a single JSON blob.
const (
	KeyLessonScores    = "lesson-scores"
	KeyExamScores      = "exam-scores"
	KeyDailyProgress   = "daily-progress"
	KeyStreak          = "streak-state"
	KeyVocab           = "vocab-db"
	KeyPracticeSession = "current-practice-session"
)

// AllKeys lists every key the app writes.
var AllKeys = []string{
	KeyLessonScores,
	KeyExamScores,
	KeyDailyProgress,
	KeyStreak,
	KeyVocab,
	KeyPracticeSession,
}

// Port is a key→blob store with last-write-wins semantics.
type Port interface {
	// Get returns the blob stored under key. ok is false if none exists.
	Get(ctx context.Context, key string) (blob []byte, ok bool, err error)

	// Set replaces the blob stored under key.
	Set(ctx context.Context, key string, blob []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// MemoryPort is an in-process Port. The zero value is ready to use.
type MemoryPort struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryPort returns an empty MemoryPort.
func NewMemoryPort() *MemoryPort {
	return &MemoryPort{}
}

func (m *MemoryPort) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (m *MemoryPort) Set(_ context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blobs == nil {
		m.blobs = make(map[string][]byte)
	}
	m.blobs[key] = append([]byte(nil), blob...)
	return nil
}

func (m *MemoryPort) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}
