package supabase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured means the store endpoint or credential env is absent.
	// Surfaced to callers instead of silently defaulting.
	ErrNotConfigured = errors.New("supabase not configured (SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY required)")

	// ErrDecode means the store answered 2xx but the body did not parse as
	// the expected structure.
	ErrDecode = errors.New("invalid response format from supabase")
)

// StorageError is any non-2xx answer from the store, upstream status and body
// attached for logs.
type StorageError struct {
	Status int
	Body   string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("supabase returned HTTP %d: %s", e.Status, e.Body)
}

// IsDuplicateKey reports whether the error is a uniqueness-constraint
// violation. PostgREST answers 409 with the Postgres 23505 code in the body.
func (e *StorageError) IsDuplicateKey() bool {
	if e.Status == 409 {
		return true
	}
	return strings.Contains(e.Body, "23505") || strings.Contains(e.Body, "duplicate key")
}

// IsDuplicateKey reports whether err wraps a duplicate-key StorageError.
func IsDuplicateKey(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.IsDuplicateKey()
}
