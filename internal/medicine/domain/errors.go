package domain

import "errors"

var (
	ErrNotFound         = errors.New("medicine_entry_not_found")
	ErrInvalidQuantity  = errors.New("invalid_quantity")
	ErrInvalidUnitPrice = errors.New("invalid_unit_price")
	ErrInvalidDate      = errors.New("invalid_date")
	ErrInvalidName      = errors.New("invalid_name")
)
