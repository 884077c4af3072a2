package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers subjects missing from both the student-specific
	// and default schedule, and payment ids the ledger does not know.
	ErrNotFound = errors.New("not found")

	// ErrStorage wraps database failures so handlers can show a generic
	// message while the real cause lands in the log.
	ErrStorage = errors.New("storage failure")
)

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
