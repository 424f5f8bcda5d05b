package domain

import "errors"

var (
	// ErrInsufficientStock means the requested quantity exceeds available stock
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrProductNotFound means the referenced product does not exist
	ErrProductNotFound = errors.New("product not found")

	// ErrReservationNotFound means the referenced reservation does not exist
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidQuantity means the quantity is out of the accepted range
	ErrInvalidQuantity = errors.New("invalid quantity")
)
