package session

import (
	"context"
	"time"

	"github.com/fkhayef/billsplit/internal/split"
)

// Store defines the persistence operations the ledger needs. The abstraction
// allows swapping storage backends (Postgres, SQLite, etc.) without changing
// the service layer.
type Store interface {
	// InsertEntries persists one row per entry, all sharing owner and ts.
	InsertEntries(ctx context.Context, owner string, ts time.Time, entries []split.Participant) error

	// ListEntries returns every row for owner ordered by timestamp
	// descending, preserving insertion order within a timestamp.
	ListEntries(ctx context.Context, owner string) ([]Entry, error)
}
