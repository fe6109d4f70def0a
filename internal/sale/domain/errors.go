package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("sale_record_not_found")
	ErrInvalidInput      = errors.New("invalid_input")
	ErrInvalidDate       = errors.New("invalid_date")
	ErrInvalidWeight     = errors.New("invalid_weight")
	ErrInsufficientBirds = errors.New("insufficient_birds")
)

// InsufficientBirdsError carries the remaining live-bird count.
type InsufficientBirdsError struct {
	Remaining int
	Requested int
}

func (e *InsufficientBirdsError) Error() string {
	return fmt.Sprintf("insufficient_birds: only %d remaining, requested %d", e.Remaining, e.Requested)
}

func (e *InsufficientBirdsError) Unwrap() error { return ErrInsufficientBirds }
