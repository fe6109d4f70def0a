package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("flock_not_found")
	ErrBatchInactive      = errors.New("batch_inactive")
	ErrActiveBatchExists  = errors.New("active_batch_exists")
	ErrInvalidStartDate   = errors.New("invalid_start_date")
	ErrInvalidChickCount  = errors.New("invalid_chick_count")
	ErrInvalidPrice       = errors.New("invalid_price")
	ErrAlreadyClosed      = errors.New("batch_already_closed")
	ErrNotClosed          = errors.New("batch_not_closed")
	ErrCloseGateNotMet    = errors.New("close_gate_not_met")
	ErrBatchNoCollision   = errors.New("batch_no_collision")
	ErrNoMonitoringRecord = errors.New("no_monitoring_records")
)

// CloseGateError reports why a batch may not transition to closed yet.
type CloseGateError struct {
	LatestAge int
}

func (e *CloseGateError) Error() string {
	return fmt.Sprintf("close_gate_not_met: latest recorded age %d, need >= %d", e.LatestAge, MinCloseAge)
}

func (e *CloseGateError) Unwrap() error { return ErrCloseGateNotMet }
