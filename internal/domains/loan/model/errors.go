package model

import (
	"errors"
	"fmt"
)

var (
	ErrLoanNotFound  = errors.New("loan not found")
	ErrInvalidLoanID = errors.New("invalid loan id")
	ErrInvalidLoan   = errors.New("invalid loan payload")
)

func NewLoanNotFoundError(id string) error {
	return fmt.Errorf("%w: id=%s", ErrLoanNotFound, id)
}

func NewInvalidLoanIDError(id string) error {
	return fmt.Errorf("%w: %q", ErrInvalidLoanID, id)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrLoanNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidLoanID) || errors.Is(err, ErrInvalidLoan)
}
