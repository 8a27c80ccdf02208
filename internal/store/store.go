// Package store abstracts the authoritative record store. The core treats
// it as an external collaborator: reads may be served from the snapshot
// cache, but the store always wins on correctness.
package store

import (
	"context"
	"errors"

	"jobtrack/pkg/models"
)

var (
	// ErrNotFound is returned when a record is absent on a
	// read-before-mutate or identifier-addressed read.
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable is returned when the store is unreachable or
	// misconfigured. Callers translate it to end-user text; no internal
	// detail rides along.
	ErrUnavailable = errors.New("store unavailable")
)

// Reader provides snapshot and single-record reads.
type Reader interface {
	// List returns the full record set for a collection path.
	List(ctx context.Context, path string) ([]models.Application, error)

	// Get returns one record or ErrNotFound.
	Get(ctx context.Context, path, id string) (*models.Application, error)

	// Subscribe emits the full record set on every mutation, starting with
	// the current state. The channel closes when ctx is cancelled.
	Subscribe(ctx context.Context, path string) (<-chan []models.Application, error)
}

// Writer provides the mutation operations. All callers are expected to have
// passed the identifier guard first.
type Writer interface {
	// Create stores a new record and returns its assigned id.
	Create(ctx context.Context, path string, app models.Application) (string, error)

	// Update applies a partial update to an existing record.
	Update(ctx context.Context, path, id string, patch models.ApplicationPatch) error

	// Delete removes a record.
	Delete(ctx context.Context, path, id string) error
}

// Store combines reads, writes and lifecycle.
type Store interface {
	Reader
	Writer
	Ping(ctx context.Context) error
	Close() error
}
