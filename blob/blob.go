// Package blob stores the binary video/audio assets referenced by project
// documents. Assets are opaque: store by key, resolve a playable URL, delete
// explicitly whenever the owning project or reference goes away.
package blob

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a key has no stored object.
var ErrNotFound = errors.New("asset not found in storage")

// Store is the asset store consumed by the workflows.
type Store interface {
	// Put uploads an object under key.
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	// URL returns a resolvable (possibly expiring) URL for the object.
	URL(ctx context.Context, key string) (string, error)
	// Size returns the stored object size in bytes, or ErrNotFound.
	Size(ctx context.Context, key string) (int64, error)
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
