// Package persisttest provides Ports for exercising failure paths.
package persisttest

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/lingoz/internal/persist"
)

// ErrUnavailable is returned by a FlakyPort that is failing.
var ErrUnavailable = errors.New("storage unavailable")

// FlakyPort wraps a MemoryPort and can be switched to fail reads or writes.
type FlakyPort struct {
	*persist.MemoryPort

	mu         sync.Mutex
	failWrites bool
	failReads  bool
	writes     int
}

// NewFlakyPort returns a healthy FlakyPort.
func NewFlakyPort() *FlakyPort {
	return &FlakyPort{MemoryPort: persist.NewMemoryPort()}
}

// FailWrites makes Set and Remove fail while on is true.
func (p *FlakyPort) FailWrites(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failWrites = on
}

// FailReads makes Get fail while on is true.
func (p *FlakyPort) FailReads(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failReads = on
}

// Writes returns the number of successful Set calls.
func (p *FlakyPort) Writes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

func (p *FlakyPort) Get(ctx context.Context, key string) ([]byte, bool, error) {
	p.mu.Lock()
	fail := p.failReads
	p.mu.Unlock()
	if fail {
		return nil, false, ErrUnavailable
	}
	return p.MemoryPort.Get(ctx, key)
}

func (p *FlakyPort) Set(ctx context.Context, key string, blob []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWrites {
		return ErrUnavailable
	}
	p.writes++
	return p.MemoryPort.Set(ctx, key, blob)
}

func (p *FlakyPort) Remove(ctx context.Context, key string) error {
	p.mu.Lock()
	fail := p.failWrites
	p.mu.Unlock()
	if fail {
		return ErrUnavailable
	}
	return p.MemoryPort.Remove(ctx, key)
}
