package types

// Persister saves and loads the full ordered task collection. Saves are
// wholesale: every call replaces whatever was stored before.
type Persister interface {
	// Save writes all tasks in order, overwriting previous content.
	Save(tasks []Task) error

	// Load returns the stored tasks in order. A missing or empty store
	// yields an empty slice and nil. Unreadable or malformed content yields
	// an empty (non-nil) slice and an error; malformed content wraps
	// ErrMalformed.
	Load() ([]Task, error)

	// Close releases any resources held by the backend. Idempotent.
	Close() error
}
