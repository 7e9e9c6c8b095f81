package model

import (
	"errors"
	"fmt"
)

// ===================================
// DOMAIN ERRORS
// ===================================

var (
	// ErrBookNotFound is returned when no book has the requested id
	ErrBookNotFound = errors.New("book not found")

	// ErrInvalidBookID is returned when the id is not a valid identifier for the store
	ErrInvalidBookID = errors.New("invalid book id")

	// ErrInvalidFilter is returned for unknown filter fields or ill-typed filter values
	ErrInvalidFilter = errors.New("invalid book filter")

	// ErrInvalidBook is returned when a create/update payload fails validation
	ErrInvalidBook = errors.New("invalid book payload")

	// ErrOutOfStock is returned by the guarded decrement when quantity is already 0
	ErrOutOfStock = errors.New("no copies available")
)

// ===================================
// ERROR HELPERS
// ===================================

// NewBookNotFoundError creates a detailed not found error
func NewBookNotFoundError(id string) error {
	return fmt.Errorf("%w: id=%s", ErrBookNotFound, id)
}

// NewInvalidBookIDError creates a detailed invalid id error
func NewInvalidBookIDError(id string) error {
	return fmt.Errorf("%w: %q", ErrInvalidBookID, id)
}

// NewInvalidFilterError names the offending field
func NewInvalidFilterError(field, reason string) error {
	return fmt.Errorf("%w: field %q %s", ErrInvalidFilter, field, reason)
}

// NewOutOfStockError creates error with the book id
func NewOutOfStockError(id string) error {
	return fmt.Errorf("%w: id=%s", ErrOutOfStock, id)
}

// IsNotFoundError checks if error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrBookNotFound)
}

// IsValidationError checks if error is caused by bad input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidBookID) ||
		errors.Is(err, ErrInvalidFilter) ||
		errors.Is(err, ErrInvalidBook)
}

// IsOutOfStockError checks if error is an out of stock error
func IsOutOfStockError(err error) bool {
	return errors.Is(err, ErrOutOfStock)
}
