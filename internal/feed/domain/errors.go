package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("feed_transaction_not_found")
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrInvalidUnitPrice  = errors.New("invalid_unit_price")
	ErrInvalidDate       = errors.New("invalid_date")
	ErrInvalidFeedType   = errors.New("invalid_feed_type")
	ErrInsufficientStock = errors.New("insufficient_stock")
	ErrDailyUsageEntry   = errors.New("daily_usage_entry_managed_by_recorder")
)

// InsufficientStockError carries the available balance so callers can render
// an actionable message.
type InsufficientStockError struct {
	AvailableKg float64
	RequestedKg float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient_stock: only %.2f kg available, requested %.3f kg", e.AvailableKg, e.RequestedKg)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
