package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fkhayef/billsplit/internal/split"
)

// Common errors
var (
	ErrNoOwner   = errors.New("an authenticated owner is required")
	ErrNoEntries = errors.New("a session requires at least one entry")
	ErrEmptyName = errors.New("participant name is required")

	// ErrPersistence marks store failures. A split that fails to record is
	// still computed: the caller may keep displaying the amounts.
	ErrPersistence = errors.New("history store unavailable")
)

// Service handles split computation and session ledger logic
type Service struct {
	store   Store
	factory *split.Factory
}

// NewService creates a new session service with dependencies injected
func NewService(store Store, factory *split.Factory) *Service {
	return &Service{
		store:   store,
		factory: factory,
	}
}

// Compute runs the requested split policy without touching the store. For
// EVEN splits amounts is ignored; for CUSTOM it must carry one candidate per
// participant.
func (s *Service) Compute(splitType string, total float64, names []string, amounts []float64) ([]split.Participant, error) {
	strategy, err := s.factory.CreateFromString(splitType)
	if err != nil {
		return nil, err
	}
	return strategy.Compute(total, names, amounts)
}

// Record persists the finalized entries as one session owned by owner,
// stamped with the current time. Every entry becomes one stored row sharing
// that timestamp, which is the key later grouping reconstructs sessions by.
func (s *Service) Record(ctx context.Context, owner string, entries []split.Participant) (*Session, error) {
	if owner == "" {
		return nil, ErrNoOwner
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	for i, entry := range entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("entries[%d]: %w", i, ErrEmptyName)
		}
		if math.IsNaN(entry.Amount) || math.IsInf(entry.Amount, 0) || entry.Amount < 0 {
			return nil, &split.InvalidAmountError{Field: fmt.Sprintf("entries[%d].amount", i)}
		}
	}

	// Postgres keeps microsecond precision; truncate so the stored timestamp
	// round-trips equal to the one returned here.
	ts := time.Now().UTC().Truncate(time.Microsecond)

	if err := s.store.InsertEntries(ctx, owner, ts, entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &Session{Owner: owner, Timestamp: ts, Entries: entries}, nil
}

// List returns every recorded session for owner, most recent first. A user
// with no history gets an empty slice, not an error.
func (s *Service) List(ctx context.Context, owner string) ([]Session, error) {
	if owner == "" {
		return nil, ErrNoOwner
	}

	rows, err := s.store.ListEntries(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return groupEntries(owner, rows), nil
}

// groupEntries folds rows sharing an identical timestamp into one session.
// Rows arrive newest first, so consecutive equal timestamps always belong to
// the same session.
func groupEntries(owner string, rows []Entry) []Session {
	sessions := make([]Session, 0)
	for _, row := range rows {
		n := len(sessions)
		if n == 0 || !sessions[n-1].Timestamp.Equal(row.Timestamp) {
			sessions = append(sessions, Session{Owner: owner, Timestamp: row.Timestamp})
			n++
		}
		sessions[n-1].Entries = append(sessions[n-1].Entries, split.Participant{
			Name:   row.PersonName,
			Amount: row.Amount,
		})
	}
	return sessions
}
