package asset

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidID is returned for an empty file identifier.
	ErrInvalidID = errors.New("file id is required")

	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound = errors.New("file not found")

	// ErrStoreNotConfigured is returned when no metadata store is bound.
	ErrStoreNotConfigured = errors.New("metadata store is not configured")

	// ErrObjectStoreNotConfigured is returned when an R2 file is deleted without object storage bound.
	ErrObjectStoreNotConfigured = errors.New("object storage is not configured")

	// ErrEmptyObjectKey is returned when no object key can be derived for an R2 file.
	ErrEmptyObjectKey = errors.New("object key is empty")

	// ErrTelegramNotConfigured is recorded when a message reference exists but no bot is bound.
	ErrTelegramNotConfigured = errors.New("telegram bot is not configured")
)

// NotFoundError reports that no candidate key resolved to a record.
// LastKey is the final key probed.
type NotFoundError struct {
	ID      string
	LastKey string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file %q not found (last key probed %q)", e.ID, e.LastKey)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ObjectDeleteError wraps an object store failure. Metadata is left intact
// when it is returned.
type ObjectDeleteError struct {
	ObjectKey string
	Err       error
}

func (e *ObjectDeleteError) Error() string {
	return fmt.Sprintf("delete object %q: %v", e.ObjectKey, e.Err)
}

func (e *ObjectDeleteError) Unwrap() error { return e.Err }

// isConfigError reports whether err is a missing or unusable binding.
func isConfigError(err error) bool {
	return errors.Is(err, ErrStoreNotConfigured) ||
		errors.Is(err, ErrObjectStoreNotConfigured) ||
		errors.Is(err, ErrEmptyObjectKey)
}
