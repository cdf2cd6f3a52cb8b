package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPayload is returned when a payload misses required
	// identification fields.
	ErrInvalidPayload = errors.New("ledger: invalid payload")

	// ErrDuplicateID is returned when a chain id is already registered.
	ErrDuplicateID = errors.New("ledger: duplicate chain id")

	// ErrChainNotFound is returned when no chain exists for an item id.
	ErrChainNotFound = errors.New("ledger: chain not found")

	// ErrSelfTransfer is returned when sender and recipient are the same
	// address.
	ErrSelfTransfer = errors.New("ledger: sender and recipient are identical")

	// ErrNotCurrentHolder is returned when the declared sender does not hold
	// the item.
	ErrNotCurrentHolder = errors.New("ledger: sender is not the current holder")

	// ErrInvalidSignature is returned when a transfer's authorization does
	// not verify against its public key.
	ErrInvalidSignature = errors.New("ledger: invalid transfer signature")
)

// ValidationError reports the first block whose previous_hash does not match
// the recomputed hash of its predecessor.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ledger: chain invalid at block %d: %s", e.Index, e.Reason)
}
