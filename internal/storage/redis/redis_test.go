package redis

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
)

func newTestStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	store := NewFromClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "test:")
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRedisStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("Set then Get round-trips fields", func(t *testing.T) {
		if err := store.Set(ctx, "teams", "t1", storage.Doc{"teamName": "Alpha", "members": []any{"u1"}}); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		doc, err := store.Get(ctx, "teams", "t1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if doc["teamName"] != "Alpha" {
			t.Errorf("teamName: got %v, want Alpha", doc["teamName"])
		}
	})

	t.Run("Get returns ErrNotFound for missing document", func(t *testing.T) {
		if _, err := store.Get(ctx, "teams", "missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Update fails on missing document", func(t *testing.T) {
		err := store.Update(ctx, "visits", "missing", storage.Doc{"placeId": "p1"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Merge and DeleteField", func(t *testing.T) {
		store.Merge(ctx, "favorites", "u1", storage.Doc{"p1": true})
		store.Merge(ctx, "favorites", "u1", storage.Doc{"p2": true})
		store.Merge(ctx, "favorites", "u1", storage.Doc{"p1": storage.DeleteField})

		doc, err := store.Get(ctx, "favorites", "u1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		keys := storage.Keys(doc)
		if len(keys) != 1 || keys[0] != "p2" {
			t.Errorf("Expected [p2], got %v", keys)
		}
	})

	t.Run("Query and Delete keep the index consistent", func(t *testing.T) {
		store.Set(ctx, "teams", "t2", storage.Doc{"members": []any{"u1", "u2"}})

		got, err := store.Query(ctx, "teams", storage.Where("members", storage.OpArrayContains, "u1"))
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(got) != 2 || got[0].ID != "t1" || got[1].ID != "t2" {
			t.Errorf("Expected [t1 t2], got %+v", got)
		}

		if err := store.Delete(ctx, "teams", "t1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		got, _ = store.Query(ctx, "teams")
		if len(got) != 1 || got[0].ID != "t2" {
			t.Errorf("Expected [t2] after delete, got %+v", got)
		}
	})
}

func TestRedisStore_ConcurrentTransactions(t *testing.T) {
	store := newTestStore(t)
	store.maxRetries = 100
	ctx := context.Background()

	const writers = 10
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

func TestRedisStore_TransactionErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("callback error is returned unchanged", func(t *testing.T) {
		store := newTestStore(t)
		errDenied := errors.New("denied")
		err := store.RunTransaction(ctx, "teams", "t1", func(storage.Doc) (storage.Doc, error) {
			return nil, errDenied
		})
		if !errors.Is(err, errDenied) {
			t.Errorf("Expected callback error, got %v", err)
		}
		if errors.Is(err, storage.ErrUnavailable) {
			t.Errorf("Callback error should not be reported as unavailable: %v", err)
		}
	})

	t.Run("lost connection is ErrUnavailable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store := NewFromClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1}), "test:")
		t.Cleanup(func() { store.Close() })
		mr.Close()

		err := store.RunTransaction(ctx, "teams", "t1", func(storage.Doc) (storage.Doc, error) {
			return storage.Doc{"teamName": "Alpha"}, nil
		})
		if !errors.Is(err, storage.ErrUnavailable) {
			t.Errorf("Expected ErrUnavailable, got %v", err)
		}
	})
}
