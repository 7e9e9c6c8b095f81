package access

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized: no token, bad signature, or expired
	ErrUnauthorized = errors.New("unauthorized access")

	// ErrForbidden: valid token, but for a different identity
	ErrForbidden = errors.New("forbidden access")
)

func newUnauthorizedError(reason error) error {
	return fmt.Errorf("%w: %w", ErrUnauthorized, reason)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}
