package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "camptrack-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("Set then Get round-trips fields", func(t *testing.T) {
		err := store.Set(ctx, "teams", "t1", storage.Doc{
			"teamName":  "Alpha",
			"members":   []any{"u1", "u2"},
			"createdAt": int64(1700000000000),
		})
		if err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		doc, err := store.Get(ctx, "teams", "t1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if doc["teamName"] != "Alpha" {
			t.Errorf("teamName: got %v, want Alpha", doc["teamName"])
		}
		members, _ := doc["members"].([]any)
		if len(members) != 2 {
			t.Errorf("members: got %d, want 2", len(members))
		}
		if doc["createdAt"] != float64(1700000000000) {
			t.Errorf("createdAt: got %v", doc["createdAt"])
		}
	})

	t.Run("Get returns ErrNotFound for missing document", func(t *testing.T) {
		_, err := store.Get(ctx, "teams", "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Merge creates and preserves other keys", func(t *testing.T) {
		if err := store.Merge(ctx, "favorites", "u1", storage.Doc{"p1": true}); err != nil {
			t.Fatalf("Merge failed: %v", err)
		}
		if err := store.Merge(ctx, "favorites", "u1", storage.Doc{"p2": true}); err != nil {
			t.Fatalf("Merge failed: %v", err)
		}

		doc, err := store.Get(ctx, "favorites", "u1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(storage.Keys(doc)) != 2 {
			t.Errorf("Expected 2 keys, got %v", doc)
		}
	})

	t.Run("Merge with DeleteField removes key", func(t *testing.T) {
		if err := store.Merge(ctx, "favorites", "u1", storage.Doc{"p1": storage.DeleteField}); err != nil {
			t.Fatalf("Merge failed: %v", err)
		}
		doc, _ := store.Get(ctx, "favorites", "u1")
		if _, ok := doc["p1"]; ok {
			t.Error("Expected p1 to be removed")
		}
		if doc["p2"] != true {
			t.Error("Expected p2 to survive")
		}
	})

	t.Run("Update fails on missing document", func(t *testing.T) {
		err := store.Update(ctx, "visits", "missing", storage.Doc{"placeId": "p1"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if _, err := store.Get(ctx, "visits", "missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Error("Update must not create the document")
		}
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		if err := store.Set(ctx, "notifications", "n1", storage.Doc{"id": "n1"}); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := store.Delete(ctx, "notifications", "n1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := store.Delete(ctx, "notifications", "n1"); err != nil {
			t.Errorf("Second delete should succeed, got %v", err)
		}
	})

	t.Run("Query filters by equality and array membership", func(t *testing.T) {
		store.Set(ctx, "notifications", "a", storage.Doc{"toUserId": "u1", "seen": false})
		store.Set(ctx, "notifications", "b", storage.Doc{"toUserId": "u2", "seen": true})
		store.Set(ctx, "notifications", "c", storage.Doc{"toUserId": "u1", "seen": true})

		got, err := store.Query(ctx, "notifications", storage.Where("toUserId", storage.OpEqual, "u1"))
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
			t.Errorf("Expected [a c], got %+v", got)
		}

		got, err = store.Query(ctx, "notifications",
			storage.Where("toUserId", storage.OpEqual, "u1"),
			storage.Where("seen", storage.OpEqual, true),
		)
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != "c" {
			t.Errorf("Expected [c], got %+v", got)
		}

		teams, err := store.Query(ctx, "teams", storage.Where("members", storage.OpArrayContains, "u2"))
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(teams) != 1 || teams[0].ID != "t1" {
			t.Errorf("Expected team t1, got %+v", teams)
		}
	})

	t.Run("Query rejects invalid field names", func(t *testing.T) {
		_, err := store.Query(ctx, "teams", storage.Where("members') OR 1=1 --", storage.OpEqual, "x"))
		if err == nil {
			t.Error("Expected error for invalid field name")
		}
	})

	t.Run("RunTransaction with nil result leaves document untouched", func(t *testing.T) {
		err := store.RunTransaction(ctx, "backpacks", "u9", func(current storage.Doc) (storage.Doc, error) {
			return nil, nil
		})
		if err != nil {
			t.Fatalf("RunTransaction failed: %v", err)
		}
		if _, err := store.Get(ctx, "backpacks", "u9"); !errors.Is(err, storage.ErrNotFound) {
			t.Error("Expected no document to be created")
		}
	})
}

func TestSQLiteStore_ConcurrentTransactions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.RunTransaction(ctx, "counters", "c1", func(current storage.Doc) (storage.Doc, error) {
				n, _ := current["n"].(float64)
				return storage.Doc{"n": n + 1}, nil
			})
			if err != nil {
				t.Errorf("RunTransaction failed: %v", err)
			}
		}()
	}
	wg.Wait()

	doc, err := store.Get(ctx, "counters", "c1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if doc["n"] != float64(writers) {
		t.Errorf("Expected %d increments, got %v", writers, doc["n"])
	}
}
