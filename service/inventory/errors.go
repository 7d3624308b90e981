package inventory

import (
	"errors"
	"fmt"
)

// ErrProductNotFound is returned when a stock change targets a product that
// does not exist.
var ErrProductNotFound = errors.New("product not found")

// PersistenceError wraps a datastore failure (constraint violation, I/O
// error) during a stock write or ledger append. The caller owns the rollback.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
