package inventory

import (
	"context"
	"fmt"
)

// Ledger is the remote store the staging sync reads from and writes to.
type Ledger interface {
	// LookupCards maps card codes to card ids in one batch read.
	LookupCards(ctx context.Context, codes []string) (map[string]int64, error)
	// LookupPrints returns the print variants of the given cards, grouped by card id.
	LookupPrints(ctx context.Context, cardIDs []int64) (map[int64][]CardPrint, error)
	// ClearStaging deletes every staging row with an explicit filter and
	// reports how many were removed (-1 when unknown).
	ClearStaging(ctx context.Context) (int64, error)
	// InsertStaging writes all lots in one bulk call.
	InsertStaging(ctx context.Context, lots []StagedLot) error
}

// Replacer is implemented by ledgers that can clear and insert atomically.
type Replacer interface {
	ReplaceStaging(ctx context.Context, lots []StagedLot) (int64, error)
}

// LedgerError is a failed ledger call. Status is the HTTP status for REST
// backends and 0 for database backends.
type LedgerError struct {
	Op     string
	Status int
	Text   string
	Err    error
}

func (e *LedgerError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ledger %s failed: status %d: %s", e.Op, e.Status, e.Text)
	}
	return fmt.Sprintf("ledger %s failed: %s", e.Op, e.Text)
}

func (e *LedgerError) Unwrap() error { return e.Err }

func dbError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &LedgerError{Op: op, Text: err.Error(), Err: err}
}
