package extract

import (
	"errors"
	"fmt"

	"github.com/clearway/teamsdb/internal/snapshot"
)

// Code categorizes extraction errors and diagnostics.
type Code string

const (
	// CodeMalformedRecord marks a record whose value shape could not be
	// parsed. Per-record: skipped, counted, never fatal.
	CodeMalformedRecord Code = "MALFORMED_RECORD"

	// CodeUnknownDomain marks a record whose store matched no domain.
	// Per-record: skipped, counted, never fatal.
	CodeUnknownDomain Code = "UNKNOWN_DOMAIN"

	// CodeAmbiguousResolution marks a resolution that failed to produce a
	// deterministic winner. The tie-break chain bottoms out in stable
	// input order, so this is an internal invariant violation and fatal.
	CodeAmbiguousResolution Code = "AMBIGUOUS_RESOLUTION"

	// CodeSnapshotUnavailable marks a structural snapshot failure. Fatal:
	// no partial result is returned.
	CodeSnapshotUnavailable Code = "SNAPSHOT_UNAVAILABLE"
)

// Error is a structured extraction error.
type Error struct {
	Code    Code
	Message string

	// Store and Key identify the offending record where one exists.
	Store string
	Key   string

	Err error
}

func (e *Error) Error() string {
	if e.Store != "" {
		return fmt.Sprintf("%s: %s (store=%s, key=%s)", e.Code, e.Message, e.Store, e.Key)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsSnapshotUnavailable reports whether err is a structural snapshot
// failure, from either this package or the snapshot package.
func IsSnapshotUnavailable(err error) bool {
	var ee *Error
	if errors.As(err, &ee) && ee.Code == CodeSnapshotUnavailable {
		return true
	}
	return errors.Is(err, snapshot.ErrUnavailable)
}
