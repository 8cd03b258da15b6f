package database

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable wraps every persistence failure that is not a domain outcome.
var ErrStoreUnavailable = errors.New("store unavailable")

// Unavailable tags err as a store failure while keeping the original chain.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
