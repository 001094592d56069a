package docs

import "errors"

var (
	// ErrExists means an item with the requested name is already present.
	ErrExists = errors.New("an item with the same name already exists")
	// ErrWasDeleted means the document is no longer on disk or in the store.
	ErrWasDeleted = errors.New("document no longer exists")
	// ErrUnknown wraps failures that are not a name conflict.
	ErrUnknown = errors.New("unknown failure")
	// ErrInvalidName rejects names that are empty or would leave the
	// working directory.
	ErrInvalidName = errors.New("invalid name")
)
