// Package ledger implements the CampTrack relationship and membership
// consistency layer on top of a document store.
//
// Each ledger owns a set of collections and is the only writer of them.
// Lists and sets inside a document are only mutated through single-document
// transactions. Flows that touch several documents are written as short sagas
// whose steps can be re-run safely, so a failed call is recovered by calling
// it again rather than by rollback.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/berkaygencdogan/camp-track-backend/internal/assets"
	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
)

// Option customizes a ledger.
type Option func(*base)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(b *base) {
		if now != nil {
			b.now = now
		}
	}
}

// WithIDGenerator overrides how new document IDs are generated.
func WithIDGenerator(gen func() string) Option {
	return func(b *base) {
		if gen != nil {
			b.newID = gen
		}
	}
}

// base carries the dependencies shared by every ledger.
type base struct {
	store storage.Store
	now   func() time.Time
	newID func() string
}

func newBase(store storage.Store, opts []Option) base {
	b := base{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) nowMillis() int64 {
	return b.now().UnixMilli()
}

// transact wraps Store.RunTransaction with error translation.
func (b *base) transact(ctx context.Context, collection, id string, fn storage.TxFunc) error {
	err := storeErr(b.store.RunTransaction(ctx, collection, id, fn))
	countConflict(collection, err)
	return err
}

func (b *base) put(ctx context.Context, collection, id string, v any) error {
	doc, err := storage.Encode(v)
	if err != nil {
		return err
	}
	return storeErr(b.store.Set(ctx, collection, id, doc))
}

func (b *base) delete(ctx context.Context, collection, id string) error {
	return storeErr(b.store.Delete(ctx, collection, id))
}

// get loads and decodes one document. A missing document is ErrNotFound.
func get[T any](ctx context.Context, b *base, collection, id string) (*T, error) {
	if id == "" {
		return nil, notFound(collection, id)
	}
	doc, err := b.store.Get(ctx, collection, id)
	if err != nil {
		return nil, storeErr(err)
	}
	var v T
	if err := storage.Decode(doc, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// query loads and decodes every matching document, ordered by ID.
func query[T any](ctx context.Context, b *base, collection string, filters ...storage.Filter) ([]T, error) {
	snaps, err := b.store.Query(ctx, collection, filters...)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]T, 0, len(snaps))
	for _, snap := range snaps {
		var v T
		if err := storage.Decode(snap.Data, &v); err != nil {
			return nil, fmt.Errorf("%s %q: %w", collection, snap.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// mutate applies fn to an existing document inside a single-document
// transaction. fn reports whether it changed the value; unchanged values are
// not written. It returns the value as last seen by fn.
func mutate[T any](ctx context.Context, b *base, collection, id string, fn func(cur *T) (bool, error)) (*T, error) {
	var result *T
	err := b.transact(ctx, collection, id, func(current storage.Doc) (storage.Doc, error) {
		if current == nil {
			return nil, notFound(collection, id)
		}
		var v T
		if err := storage.Decode(current, &v); err != nil {
			return nil, err
		}
		changed, err := fn(&v)
		if err != nil {
			return nil, err
		}
		result = &v
		if !changed {
			return nil, nil
		}
		return storage.Encode(v)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// upsert is mutate for documents that may not exist yet; fn then receives the
// zero value.
func upsert[T any](ctx context.Context, b *base, collection, id string, fn func(cur *T) (bool, error)) (*T, error) {
	var result *T
	err := b.transact(ctx, collection, id, func(current storage.Doc) (storage.Doc, error) {
		var v T
		if current != nil {
			if err := storage.Decode(current, &v); err != nil {
				return nil, err
			}
		}
		changed, err := fn(&v)
		if err != nil {
			return nil, err
		}
		result = &v
		if !changed {
			return nil, nil
		}
		return storage.Encode(v)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// addToSet marks keys as present in an "id → true" set document, creating it
// if needed. Keys already present cause no write.
func (b *base) addToSet(ctx context.Context, collection, docID string, keys ...string) error {
	return b.transact(ctx, collection, docID, func(current storage.Doc) (storage.Doc, error) {
		changed := false
		next := storage.Doc{}
		for k, v := range current {
			next[k] = v
		}
		for _, key := range keys {
			if present, _ := next[key].(bool); !present {
				next[key] = true
				changed = true
			}
		}
		if !changed {
			return nil, nil
		}
		return next, nil
	})
}

// removeFromSet drops keys from a set document. Absent keys and an absent
// document are not errors.
func (b *base) removeFromSet(ctx context.Context, collection, docID string, keys ...string) error {
	return b.transact(ctx, collection, docID, func(current storage.Doc) (storage.Doc, error) {
		if current == nil {
			return nil, nil
		}
		changed := false
		next := storage.Doc{}
		for k, v := range current {
			next[k] = v
		}
		for _, key := range keys {
			if _, ok := next[key]; ok {
				delete(next, key)
				changed = true
			}
		}
		if !changed {
			return nil, nil
		}
		return next, nil
	})
}

// readSet returns the sorted keys of a set document. A missing document is
// the empty set.
func (b *base) readSet(ctx context.Context, collection, docID string) ([]string, error) {
	doc, err := b.store.Get(ctx, collection, docID)
	if errors.Is(err, storage.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	keys := storage.Keys(doc)
	sort.Strings(keys)
	return keys, nil
}

// appendUnique appends uid unless it is already present.
func appendUnique(list []string, uid string) ([]string, bool) {
	for _, v := range list {
		if v == uid {
			return list, false
		}
	}
	return append(list, uid), true
}

// without returns list minus every occurrence of uid.
func without(list []string, uid string) ([]string, bool) {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != uid {
			out = append(out, v)
		}
	}
	return out, len(out) != len(list)
}

// dedupe drops empty and repeated entries, keeping first occurrences.
func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Set groups every ledger over one store.
type Set struct {
	Users         *Directory
	Membership    *Membership
	Favorites     *Favorites
	Visits        *Visits
	Notifications *Notifications
	Places        *Places
	Moderation    *Moderation
	Backpacks     *Backpacks
	Posts         *Posts
}

// New wires all ledgers over store. assetStore may be nil.
func New(store storage.Store, assetStore assets.Store, opts ...Option) *Set {
	users := NewDirectory(store, opts...)
	membership := NewMembership(store, users, assetStore, opts...)
	notifications := NewNotifications(store, users, membership, opts...)
	places := NewPlaces(store, users, notifications, opts...)
	return &Set{
		Users:         users,
		Membership:    membership,
		Favorites:     NewFavorites(store, opts...),
		Visits:        NewVisits(store, users, opts...),
		Notifications: notifications,
		Places:        places,
		Moderation:    NewModeration(store, users, places, opts...),
		Backpacks:     NewBackpacks(store, opts...),
		Posts:         NewPosts(store, users, opts...),
	}
}
