package services

import (
	"errors"
	"fmt"

	"github.com/railtraits/traits-backend/internal/database"
)

// Error taxonomy of the public operations. Anything not wrapped by one of
// these sentinels is an internal store error: the transaction has been rolled
// back and the error is surfaced as-is.
var (
	// ErrInvalidArgument is returned for violated preconditions: missing or
	// duplicate entities, out-of-range values, schedule admissibility
	// failures, exhausted capacity, or an operator mutation attempted
	// through the base handle.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned where absence is semantically meaningful
	// rather than a precondition failure.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned on a serialization failure. The call may be
	// retried.
	ErrConflict = errors.New("conflict")
)

func invalidArgf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// classifyStoreError translates store-level failures that the taxonomy
// anticipates. Unique violations and privilege failures are precondition
// violations from the caller's point of view; serialization failures are
// retryable conflicts. Callers that expect no duplicates pass an empty
// onDuplicate, and a unique violation then surfaces unclassified.
func classifyStoreError(err error, onDuplicate string) error {
	switch {
	case database.IsUniqueViolation(err):
		if onDuplicate == "" {
			return err
		}
		return invalidArgf("%s", onDuplicate)
	case database.IsInsufficientPrivilege(err):
		return invalidArgf("operation requires the admin handle")
	case database.IsSerializationFailure(err):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
