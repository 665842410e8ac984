// Package assets stores binary media such as team logos.
package assets

import (
	"context"
	"errors"
)

// ErrInvalidPath is returned for paths that escape the asset root.
var ErrInvalidPath = errors.New("assets: invalid path")

// Store persists media and hands back a retrieval URL.
type Store interface {
	// Save writes data under path and returns its public URL.
	Save(ctx context.Context, data []byte, path, contentType string) (string, error)

	// Delete removes the asset at path. Callers treat failures as best-effort.
	Delete(ctx context.Context, path string) error

	// PathFromURL recovers the asset path from a URL returned by Save.
	// ok is false when the URL was not issued by this store.
	PathFromURL(url string) (path string, ok bool)
}
