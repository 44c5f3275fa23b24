package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func setupSQLite(t *testing.T) *SQLite {
	t.Helper()
	store, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite error: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("Close error: %v", err)
		}
	})

	return store
}

func TestSQLiteSetGetDelete(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Set(ctx, "deck:abcd1234", `{"contentId":"abcd1234"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, err := store.Get(ctx, "deck:abcd1234")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != `{"contentId":"abcd1234"}` {
		t.Fatalf("unexpected value: %q", value)
	}

	// Overwrite in place.
	if err := store.Set(ctx, "deck:abcd1234", "updated"); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}
	value, err = store.Get(ctx, "deck:abcd1234")
	if err != nil {
		t.Fatalf("Get after overwrite failed: %v", err)
	}
	if value != "updated" {
		t.Fatalf("expected overwritten value, got %q", value)
	}

	if err := store.Delete(ctx, "deck:abcd1234"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "deck:abcd1234"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSQLiteDeleteMissingKeyIsNoop(t *testing.T) {
	store := setupSQLite(t)

	if err := store.Delete(context.Background(), "never-set"); err != nil {
		t.Fatalf("Delete of missing key failed: %v", err)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cluedeck.db")
	ctx := context.Background()

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite error: %v", err)
	}
	if err := store.Set(ctx, "library", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer func() {
		_ = reopened.Close()
	}()

	value, err := reopened.Get(ctx, "library")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if value != "[]" {
		t.Fatalf("unexpected value after reopen: %q", value)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, err := store.Get(ctx, "k")
	if err != nil || value != "v" {
		t.Fatalf("Get returned (%q, %v)", value, err)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
