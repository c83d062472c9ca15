package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/abhisek/lingoz/internal/persist"
)

// compile-time check
var _ persist.Port = (*RecordRepo)(nil)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestFileDatabase.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='records'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "records" {
		t.Errorf("table name = %q, want 'records'", name)
	}
}

func TestRecordRepo_GetMissing(t *testing.T) {
	repo := openTestStore(t).RecordRepo()

	blob, ok, err := repo.Get(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || blob != nil {
		t.Errorf("Get(missing) = (%q, %v), want (nil, false)", blob, ok)
	}
}

func TestRecordRepo_SetOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.RecordRepo()
	ctx := context.Background()

	if err := repo.Set(ctx, persist.KeyStreak, []byte(`{"current_streak":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Set(ctx, persist.KeyStreak, []byte(`{"current_streak":2}`)); err != nil {
		t.Fatalf("set again: %v", err)
	}

	blob, ok, err := repo.Get(ctx, persist.KeyStreak)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected record to exist")
	}
	if string(blob) != `{"current_streak":2}` {
		t.Errorf("blob = %s, want last write", blob)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM records").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("stored records = %d, want 1", count)
	}
}

func TestRecordRepo_Remove(t *testing.T) {
	repo := openTestStore(t).RecordRepo()
	ctx := context.Background()

	if err := repo.Set(ctx, "k", []byte("{}")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := repo.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "k"); ok {
		t.Error("expected record to be gone")
	}
}

func TestFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lingoz.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	ctx := context.Background()
	if err := s.RecordRepo().Set(ctx, persist.KeyVocab, []byte(`{"entries":[]}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	// Data survives reopening.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	blob, ok, err := s.RecordRepo().Get(ctx, persist.KeyVocab)
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%v err=%v", ok, err)
	}
	if string(blob) != `{"entries":[]}` {
		t.Errorf("blob = %s", blob)
	}
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom", "db.sqlite")
	t.Setenv("LINGOZ_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("LINGOZ_DB", "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dataHome, "lingoz", "lingoz.db"); got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}
