// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
//
// The pool is limited to one connection, so every transaction is exclusive
// and per-document read-modify-write cannot lose updates.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Get retrieves a document by collection and ID.
func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (storage.Doc, error) {
	doc, err := getDoc(ctx, s.db, collection, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s/%s", storage.ErrNotFound, collection, id)
	}
	return doc, nil
}

// Set overwrites a document.
func (s *SQLiteStore) Set(ctx context.Context, collection, id string, data storage.Doc) error {
	return putDoc(ctx, s.db, collection, id, storage.Clean(data))
}

// Merge writes top-level fields, creating the document when absent.
func (s *SQLiteStore) Merge(ctx context.Context, collection, id string, fields storage.Doc) error {
	return s.RunTransaction(ctx, collection, id, func(current storage.Doc) (storage.Doc, error) {
		return storage.ApplyFields(current, fields), nil
	})
}

// Update writes top-level fields of an existing document.
func (s *SQLiteStore) Update(ctx context.Context, collection, id string, fields storage.Doc) error {
	return s.RunTransaction(ctx, collection, id, func(current storage.Doc) (storage.Doc, error) {
		if current == nil {
			return nil, fmt.Errorf("%w: %s/%s", storage.ErrNotFound, collection, id)
		}
		return storage.ApplyFields(current, fields), nil
	})
}

// Delete removes a document if present.
func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	)
	if err != nil {
		return unavailable("failed to delete document", err)
	}
	return nil
}

// Query returns documents in a collection matching every filter.
// String-valued filters are evaluated by SQLite; all filters are re-checked
// in Go so both backends share one matching rule.
func (s *SQLiteStore) Query(ctx context.Context, collection string, filters ...storage.Filter) ([]storage.Snapshot, error) {
	var (
		clauses = []string{"collection = ?"}
		args    = []any{collection}
	)
	for _, f := range filters {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		value, ok := f.Value.(string)
		if !ok {
			continue
		}
		path := "$." + f.Field
		switch f.Op {
		case storage.OpEqual:
			clauses = append(clauses, "json_extract(data, ?) = ?")
		case storage.OpArrayContains:
			clauses = append(clauses, "EXISTS (SELECT 1 FROM json_each(data, ?) WHERE json_each.value = ?)")
		}
		args = append(args, path, value)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, data FROM documents WHERE "+strings.Join(clauses, " AND ")+" ORDER BY id",
		args...,
	)
	if err != nil {
		return nil, unavailable("failed to query documents", err)
	}
	defer rows.Close()

	var snapshots []storage.Snapshot
	for rows.Next() {
		var (
			id  string
			raw string
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, unavailable("failed to scan document", err)
		}
		doc, err := storage.Unmarshal([]byte(raw))
		if err != nil {
			return nil, err
		}
		if !storage.MatchAll(doc, filters) {
			continue
		}
		snapshots = append(snapshots, storage.Snapshot{ID: id, Data: doc})
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("failed to iterate documents", err)
	}

	return snapshots, nil
}

// RunTransaction applies fn to one document inside a SQL transaction.
func (s *SQLiteStore) RunTransaction(ctx context.Context, collection, id string, fn storage.TxFunc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("failed to begin transaction", err)
	}
	defer tx.Rollback()

	current, err := getDoc(ctx, tx, collection, id)
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}

	if err := putDoc(ctx, tx, collection, id, storage.Clean(next)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return unavailable("failed to commit transaction", err)
	}
	return nil
}

// getDoc returns nil, nil when the document does not exist.
func getDoc(ctx context.Context, q queryer, collection, id string) (storage.Doc, error) {
	var raw string
	err := q.QueryRowContext(ctx,
		"SELECT data FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("failed to get document", err)
	}
	return storage.Unmarshal([]byte(raw))
}

func putDoc(ctx context.Context, q queryer, collection, id string, doc storage.Doc) error {
	raw, err := storage.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data, version, updated_at)
		 VALUES (?, ?, ?, 1, ?)
		 ON CONFLICT (collection, id) DO UPDATE SET
		     data = excluded.data,
		     version = documents.version + 1,
		     updated_at = excluded.updated_at`,
		collection, id, string(raw), time.Now().UnixMilli(),
	)
	if err != nil {
		return unavailable("failed to write document", err)
	}
	return nil
}

func unavailable(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, storage.ErrUnavailable, err)
}
