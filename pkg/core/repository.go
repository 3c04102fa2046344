package core

import "context"

// NoteRepository defines the contract for storing and retrieving notes.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism.
type NoteRepository interface {
	// Initialize ensures the underlying storage is ready (e.g., create directories, git init).
	Initialize(ctx context.Context) error

	// Insert persists a new note and returns it with its assigned ID.
	Insert(ctx context.Context, n Note) (Note, error)

	// Get retrieves a note by its ID. It returns ErrNotFound if missing.
	Get(ctx context.Context, id int64) (Note, error)

	// List returns all stored notes, in no particular order.
	List(ctx context.Context) ([]Note, error)

	// Update replaces an existing note. It returns ErrNotFound if missing.
	Update(ctx context.Context, n Note) error

	// Delete removes a note by its ID.
	Delete(ctx context.Context, id int64) error
}

// SettingsRepository stores the single settings record.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (Settings, error)
	UpdateSettings(ctx context.Context, s Settings) error
}

// Watchable defines an interface for repositories that support real-time change monitoring.
type Watchable interface {
	// Watch returns a channel of events matching the vault-relative glob pattern.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
