package persist

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counters struct {
	Values map[string]int `json:"values"`
}

func TestMemoryPort_CopiesBlobs(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPort()

	blob := []byte(`{"a":1}`)
	require.NoError(t, p.Set(ctx, "k", blob))
	blob[2] = 'X'

	got, ok, err := p.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, p.Remove(ctx, "k"))
	require.NoError(t, p.Remove(ctx, "k"), "removing a missing key is not an error")
	_, ok, _ = p.Get(ctx, "k")
	assert.False(t, ok)
}

func TestLoad_MissingIsEmpty(t *testing.T) {
	s := New(NewMemoryPort(), nil)
	v, ok := Load[counters](context.Background(), s, "missing")
	assert.False(t, ok)
	assert.Nil(t, v.Values)
}

func TestLoad_CorruptIsEmpty(t *testing.T) {
	ctx := context.Background()
	port := NewMemoryPort()
	require.NoError(t, port.Set(ctx, "k", []byte(`{"values": [not json`)))

	s := New(port, nil)
	v, ok := Load[counters](ctx, s, "k")
	assert.False(t, ok)
	assert.Nil(t, v.Values)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryPort(), nil)

	require.NoError(t, s.Save(ctx, "k", counters{Values: map[string]int{"a": 2}}))
	v, ok := Load[counters](ctx, s, "k")
	require.True(t, ok)
	assert.Equal(t, 2, v.Values["a"])
}

func TestUpdate_SkipsWriteWhenFnDeclines(t *testing.T) {
	ctx := context.Background()
	port := NewMemoryPort()
	s := New(port, nil)

	_, err := Update(ctx, s, "k", func(c *counters) bool { return false })
	require.NoError(t, err)

	_, ok, _ := port.Get(ctx, "k")
	assert.False(t, ok)
}

func TestUpdate_ConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryPort(), nil)

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := Update(ctx, s, "k", func(c *counters) bool {
				if c.Values == nil {
					c.Values = make(map[string]int)
				}
				c.Values[fmt.Sprintf("ex-%d", i)]++
				c.Values["total"]++
				return true
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	v, ok := Load[counters](ctx, s, "k")
	require.True(t, ok)
	assert.Equal(t, writers, v.Values["total"])
	assert.Len(t, v.Values, writers+1)
}

func TestTake_RemovesAfterRead(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryPort(), nil)
	require.NoError(t, s.Save(ctx, "k", counters{Values: map[string]int{"a": 1}}))

	v, ok, err := Take[counters](ctx, s, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, v.Values["a"])

	_, ok, err = Take[counters](ctx, s, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	port := NewMemoryPort()
	s := New(port, nil)
	for _, k := range AllKeys {
		require.NoError(t, s.Save(ctx, k, counters{}))
	}

	require.NoError(t, s.Reset(ctx))
	for _, k := range AllKeys {
		_, ok, _ := port.Get(ctx, k)
		assert.False(t, ok, "key %s should be removed", k)
	}
}

// unreadablePort fails every Get and counts Set calls.
type unreadablePort struct {
	*MemoryPort
	sets int
}

func (p *unreadablePort) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, fmt.Errorf("disk unavailable")
}

func (p *unreadablePort) Set(ctx context.Context, key string, blob []byte) error {
	p.sets++
	return p.MemoryPort.Set(ctx, key, blob)
}

func TestUpdate_ReadFailureLeavesRecordUntouched(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryPort()
	require.NoError(t, New(mem, nil).Save(ctx, "k", counters{Values: map[string]int{"a": 1, "b": 2}}))

	port := &unreadablePort{MemoryPort: mem}
	s := New(port, nil)

	called := false
	_, err := Update(ctx, s, "k", func(c *counters) bool {
		called = true
		c.Values = map[string]int{"c": 3}
		return true
	})
	require.Error(t, err)
	assert.False(t, called, "fn must not run on a failed read")
	assert.Zero(t, port.sets)

	v, ok := Load[counters](ctx, New(mem, nil), "k")
	require.True(t, ok)
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, v.Values)
}

func TestTake_ReadFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryPort()
	require.NoError(t, New(mem, nil).Save(ctx, "k", counters{Values: map[string]int{"a": 1}}))

	_, ok, err := Take[counters](ctx, New(&unreadablePort{MemoryPort: mem}, nil), "k")
	require.Error(t, err)
	assert.False(t, ok)

	_, ok, _ = mem.Get(ctx, "k")
	assert.True(t, ok)
}

func TestLoad_ReadFailureIsEmpty(t *testing.T) {
	v, ok := Load[counters](context.Background(), New(&unreadablePort{MemoryPort: NewMemoryPort()}, nil), "k")
	assert.False(t, ok)
	assert.Nil(t, v.Values)
}
