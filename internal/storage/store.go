// Package storage provides the document store abstraction the ledgers run on.
//
// The store holds JSON documents addressed by (collection, id). It offers
// per-document atomic read-modify-write through RunTransaction and nothing
// stronger: there are no joins and no cross-document transactions.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("storage: document not found")

	// ErrConflict is returned when a transaction lost a concurrent update
	// race and could not be retried to completion.
	ErrConflict = errors.New("storage: transaction conflict")

	// ErrUnavailable wraps transient backend failures. Callers may retry.
	ErrUnavailable = errors.New("storage: backend unavailable")
)

// Doc is the field map of a single document.
type Doc map[string]any

// Snapshot is a document together with its ID, as returned by queries.
type Snapshot struct {
	ID   string
	Data Doc
}

// TxFunc computes the next state of a document from its current state.
// current is nil when the document does not exist. Returning a nil Doc
// leaves the document untouched.
//
// A TxFunc may run more than once and must not call back into the Store.
type TxFunc func(current Doc) (Doc, error)

// Store defines the document operations consumed by the ledgers.
// This abstraction allows swapping backends (SQLite, Redis) without changing
// the ledger layer.
type Store interface {
	// Get returns the document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Doc, error)

	// Set overwrites the whole document, creating it if needed.
	Set(ctx context.Context, collection, id string, data Doc) error

	// Merge writes the given top-level fields, creating the document if it
	// does not exist and leaving other fields untouched. A field whose value
	// is DeleteField is removed.
	Merge(ctx context.Context, collection, id string, fields Doc) error

	// Update is Merge that fails with ErrNotFound when the document is absent.
	Update(ctx context.Context, collection, id string, fields Doc) error

	// Delete removes the document. Deleting an absent document is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Query returns every document in the collection matching all filters,
	// ordered by ID.
	Query(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error)

	// RunTransaction atomically applies fn to a single document.
	RunTransaction(ctx context.Context, collection, id string, fn TxFunc) error

	// Close releases any resources held by the store.
	Close() error
}

type deleteField struct{}

// DeleteField marks a field for removal in Merge and Update.
var DeleteField any = deleteField{}

// ApplyFields merges fields into dst and returns it. dst may be nil.
func ApplyFields(dst, fields Doc) Doc {
	if dst == nil {
		dst = make(Doc, len(fields))
	}
	for k, v := range fields {
		if _, del := v.(deleteField); del {
			delete(dst, k)
			continue
		}
		dst[k] = v
	}
	return dst
}

// Clean returns a copy of data without DeleteField markers, for backends
// writing a whole document.
func Clean(data Doc) Doc {
	return ApplyFields(nil, data)
}

// Keys returns the field names of a document that map to true. It is the read
// side of the "id → true" set documents used for favorites and reverse indexes.
func Keys(doc Doc) []string {
	keys := make([]string, 0, len(doc))
	for k, v := range doc {
		if b, ok := v.(bool); ok && b {
			keys = append(keys, k)
		}
	}
	return keys
}
