// Package store persists project documents. The interface mirrors the
// partial-field patches the API performs; every write bumps LastUpdate and the
// backing stores apply whole-document writes, so concurrent sessions race with
// last-write-wins semantics by design.
package store

import (
	"context"
	"errors"

	"clipcaption/types"
)

// ErrNotFound is returned when a project ID does not exist.
var ErrNotFound = errors.New("project not found")

// Store is the project document store.
type Store interface {
	// Create inserts a new project document.
	Create(ctx context.Context, p *types.Project) error
	// Get returns the project or ErrNotFound.
	Get(ctx context.Context, id string) (*types.Project, error)
	// List returns all projects ordered by LastUpdate descending.
	List(ctx context.Context) ([]*types.Project, error)

	UpdateName(ctx context.Context, id, name string) error
	// UpdateStatus patches the status field and its error message.
	UpdateStatus(ctx context.Context, id string, status types.ProjectStatus, errMsg string) error
	// UpdateCaptions atomically replaces the caption sequence and language and
	// marks the project ready.
	UpdateCaptions(ctx context.Context, id, language string, captions []types.CaptionSegment) error
	// UpdateSettings overwrites the full settings object.
	UpdateSettings(ctx context.Context, id string, s types.CaptionSettings) error
	UpdateScript(ctx context.Context, id, script string) error
	SetGeneratedAudio(ctx context.Context, id, fileID string) error
	SetGeneratedVideo(ctx context.Context, id, fileID string) error

	// Delete removes the document and returns it so the caller can release the
	// referenced blob assets.
	Delete(ctx context.Context, id string) (*types.Project, error)
}
