package domain

import (
	"context"
)

type EntryRepository interface {
	// Create persists a new entry to the storage.
	Create(ctx context.Context, entry *Entry) error

	// GetByID retrieves a single entry by its ID.
	GetByID(ctx context.Context, id string) (*Entry, error)

	// List retrieves every entry, newest first (descending Date).
	// Aggregation always works on this snapshot.
	List(ctx context.Context) ([]*Entry, error)

	// Update modifies an existing entry.
	// Implementations must handle Optimistic Locking (version check) to prevent data races.
	Update(ctx context.Context, entry *Entry) error

	// Delete permanently removes an entry. The diary keeps no tombstones.
	Delete(ctx context.Context, id string) error
}
