// Package redis provides a Redis-backed implementation of the storage.Store interface.
//
// Each document is a JSON string under "<prefix>doc:<collection>:<id>" and
// each collection keeps a set of its IDs under "<prefix>col:<collection>".
// Read-modify-write runs under WATCH/MULTI; a lost race is retried and
// surfaces as storage.ErrConflict once retries are exhausted.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
)

var _ storage.Store = (*RedisStore)(nil)

const defaultMaxRetries = 8

// RedisStore implements storage.Store on a Redis server.
type RedisStore struct {
	client     *goredis.Client
	prefix     string
	maxRetries int
}

// New connects to the Redis server at redisURL and verifies the connection.
func New(redisURL, prefix string) (*RedisStore, error) {
	opt, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := goredis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Redis store connected", "addr", opt.Addr, "db", opt.DB)
	return NewFromClient(client, prefix), nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *goredis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, maxRetries: defaultMaxRetries}
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) docKey(collection, id string) string {
	return s.prefix + "doc:" + collection + ":" + id
}

func (s *RedisStore) indexKey(collection string) string {
	return s.prefix + "col:" + collection
}

// Get retrieves a document.
func (s *RedisStore) Get(ctx context.Context, collection, id string) (storage.Doc, error) {
	raw, err := s.client.Get(ctx, s.docKey(collection, id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("%w: %s/%s", storage.ErrNotFound, collection, id)
	}
	if err != nil {
		return nil, unavailable("failed to get document", err)
	}
	return storage.Unmarshal(raw)
}

// Set overwrites a document.
func (s *RedisStore) Set(ctx context.Context, collection, id string, data storage.Doc) error {
	raw, err := storage.Marshal(data)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, s.docKey(collection, id), raw, 0)
		pipe.SAdd(ctx, s.indexKey(collection), id)
		return nil
	})
	if err != nil {
		return unavailable("failed to write document", err)
	}
	return nil
}

// Merge writes top-level fields, creating the document when absent.
func (s *RedisStore) Merge(ctx context.Context, collection, id string, fields storage.Doc) error {
	return s.RunTransaction(ctx, collection, id, func(current storage.Doc) (storage.Doc, error) {
		return storage.ApplyFields(current, fields), nil
	})
}

// Update writes top-level fields of an existing document.
func (s *RedisStore) Update(ctx context.Context, collection, id string, fields storage.Doc) error {
	return s.RunTransaction(ctx, collection, id, func(current storage.Doc) (storage.Doc, error) {
		if current == nil {
			return nil, fmt.Errorf("%w: %s/%s", storage.ErrNotFound, collection, id)
		}
		return storage.ApplyFields(current, fields), nil
	})
}

// Delete removes a document if present.
func (s *RedisStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, s.docKey(collection, id))
		pipe.SRem(ctx, s.indexKey(collection), id)
		return nil
	})
	if err != nil {
		return unavailable("failed to delete document", err)
	}
	return nil
}

// Query scans the collection index and filters documents in memory.
func (s *RedisStore) Query(ctx context.Context, collection string, filters ...storage.Filter) ([]storage.Snapshot, error) {
	for _, f := range filters {
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}

	ids, err := s.client.SMembers(ctx, s.indexKey(collection)).Result()
	if err != nil {
		return nil, unavailable("failed to list collection", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.docKey(collection, id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, unavailable("failed to load documents", err)
	}

	var snapshots []storage.Snapshot
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a document: deleted between SMEMBERS and MGET.
			continue
		}
		doc, err := storage.Unmarshal([]byte(raw))
		if err != nil {
			return nil, err
		}
		if storage.MatchAll(doc, filters) {
			snapshots = append(snapshots, storage.Snapshot{ID: ids[i], Data: doc})
		}
	}
	return snapshots, nil
}

// RunTransaction applies fn under WATCH, retrying when another client wrote
// the document between the read and EXEC.
func (s *RedisStore) RunTransaction(ctx context.Context, collection, id string, fn storage.TxFunc) error {
	key := s.docKey(collection, id)

	// txErr holds a failure that is not Redis's: fn's own error or a bad
	// document. It is returned as is.
	var txErr error
	txf := func(tx *goredis.Tx) error {
		var current storage.Doc
		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, goredis.Nil):
		case err != nil:
			return unavailable("failed to get document", err)
		default:
			if current, txErr = storage.Unmarshal(raw); txErr != nil {
				return txErr
			}
		}

		next, err := fn(current)
		if err != nil {
			txErr = err
			return err
		}
		if next == nil {
			return nil
		}
		encoded, err := storage.Marshal(next)
		if err != nil {
			txErr = err
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, 0)
			pipe.SAdd(ctx, s.indexKey(collection), id)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, goredis.TxFailedErr) {
			slog.Debug("Redis transaction conflict, retrying",
				"collection", collection,
				"id", id,
				"attempt", attempt+1,
			)
			continue
		}
		if txErr != nil || errors.Is(err, storage.ErrUnavailable) {
			return err
		}
		return unavailable("failed to commit transaction", err)
	}
	return fmt.Errorf("%w: %s/%s after %d attempts", storage.ErrConflict, collection, id, s.maxRetries)
}

func unavailable(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, storage.ErrUnavailable, err)
}
