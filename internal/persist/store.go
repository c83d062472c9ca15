package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Store layers JSON encoding and per-key write serialization over a Port.
// Every read-modify-write on a key runs under that key's mutex, so two
// updates to the same blob from one process never lose each other's
// changes. Components share one Store per Port.
type Store struct {
	port   Port
	logger *log.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New wraps port. A nil logger discards output.
func New(port Port, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		port:   port,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Logger returns the store's logger.
func (s *Store) Logger() *log.Logger {
	return s.logger
}

func (s *Store) lock(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Load decodes the blob under key into a T. A missing, unreadable or
// corrupt blob yields the zero T and ok=false; failures are logged.
func Load[T any](ctx context.Context, s *Store, key string) (T, bool) {
	unlock := s.lock(key)
	defer unlock()
	v, ok, err := load[T](ctx, s, key)
	if err != nil {
		s.logger.Warn("read failed, using defaults", "key", key, "err", err)
	}
	return v, ok
}

// load reports a port failure as an error. A missing or corrupt blob is
// the zero T with ok=false and no error.
func load[T any](ctx context.Context, s *Store, key string) (T, bool, error) {
	var v T
	blob, ok, err := s.port.Get(ctx, key)
	if err != nil {
		return v, false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || len(blob) == 0 {
		return v, false, nil
	}
	if err := json.Unmarshal(blob, &v); err != nil {
		s.logger.Warn("corrupt record, using defaults", "key", key, "err", err)
		var zero T
		return zero, false, nil
	}
	return v, true, nil
}

// Save encodes v and writes it under key.
func (s *Store) Save(ctx context.Context, key string, v any) error {
	unlock := s.lock(key)
	defer unlock()
	return s.save(ctx, key, v)
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.port.Set(ctx, key, blob); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Update loads the record under key, applies fn and writes the result, all
// under the key's lock. If fn returns false nothing is written. The value
// after fn is returned even when the write fails, so callers can keep
// running on it. If the read fails, fn is not called and nothing is
// written, so the stored record is left as it was.
func Update[T any](ctx context.Context, s *Store, key string, fn func(*T) bool) (T, error) {
	unlock := s.lock(key)
	defer unlock()

	v, _, err := load[T](ctx, s, key)
	if err != nil {
		return v, err
	}
	if !fn(&v) {
		return v, nil
	}
	return v, s.save(ctx, key, v)
}

// Remove deletes key.
func (s *Store) Remove(ctx context.Context, key string) error {
	unlock := s.lock(key)
	defer unlock()
	if err := s.port.Remove(ctx, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Take loads the record under key and removes it in one critical section.
func Take[T any](ctx context.Context, s *Store, key string) (T, bool, error) {
	unlock := s.lock(key)
	defer unlock()

	v, ok, err := load[T](ctx, s, key)
	if err != nil {
		return v, false, err
	}
	if !ok {
		return v, false, nil
	}
	if err := s.port.Remove(ctx, key); err != nil {
		return v, true, fmt.Errorf("remove %s: %w", key, err)
	}
	return v, true, nil
}

// Reset removes every key in AllKeys, returning the first failure.
func (s *Store) Reset(ctx context.Context) error {
	var first error
	for _, key := range AllKeys {
		if err := s.Remove(ctx, key); err != nil && first == nil {
			first = err
		}
	}
	return first
}
