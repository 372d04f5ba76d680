package reconcile

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownAccount = errors.New("account is not part of this import")
	ErrNotImportable  = errors.New("account cannot be imported")
	ErrSessionClosed  = errors.New("import session is no longer open")
)

// ConstructionError means a single descriptor could not be turned into an
// account. It never aborts the rest of the batch.
type ConstructionError struct {
	AccountID string
	Err       error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("failed to build account %q: %v", e.AccountID, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}
