package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/poultrylabs/brooder/internal/dateutil"
)

var (
	ErrNotFound           = errors.New("monitoring_record_not_found")
	ErrInvalidInput       = errors.New("invalid_input")
	ErrInvalidDate        = errors.New("invalid_date")
	ErrOutOfSequence      = errors.New("out_of_sequence")
	ErrAgeOutOfRange      = errors.New("age_out_of_range")
	ErrCompensationFailed = errors.New("compensation_failed")
)

// OutOfSequenceError reports the only date the recorder accepts next.
type OutOfSequenceError struct {
	NextRequiredDate time.Time
}

func (e *OutOfSequenceError) Error() string {
	return fmt.Sprintf("out_of_sequence: next required date is %s", dateutil.Format(e.NextRequiredDate))
}

func (e *OutOfSequenceError) Unwrap() error { return ErrOutOfSequence }

// AgeOutOfRangeError reports a computed age outside [0, MaxAge].
type AgeOutOfRangeError struct {
	Age int
}

func (e *AgeOutOfRangeError) Error() string {
	return fmt.Sprintf("age_out_of_range: computed age %d outside [0, %d]", e.Age, MaxAge)
}

func (e *AgeOutOfRangeError) Unwrap() error { return ErrAgeOutOfRange }

// CompensationError is raised when rolling back one half of the linked-write
// saga itself failed; the ledger and the monitoring log may disagree and the
// condition must be surfaced loudly, never swallowed.
type CompensationError struct {
	RecordID string
	Cause    error
	Rollback error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("compensation_failed for record %s: rollback error %v after %v", e.RecordID, e.Rollback, e.Cause)
}

func (e *CompensationError) Unwrap() error { return ErrCompensationFailed }
