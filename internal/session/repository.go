package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fkhayef/billsplit/internal/split"
)

// Ensure Repository implements Store
var _ Store = (*Repository)(nil)

// Repository handles session history persistence in Postgres
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new session repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InsertEntries writes one history row per entry inside a single transaction,
// so a session is either fully recorded or not recorded at all.
func (r *Repository) InsertEntries(ctx context.Context, owner string, ts time.Time, entries []split.Participant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO history (username, person_name, amount, timestamp)
		VALUES ($1, $2, $3, $4)
	`

	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, query, owner, entry.Name, entry.Amount, ts); err != nil {
			return fmt.Errorf("failed to insert history row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListEntries retrieves all history rows for a user, newest session first.
// The secondary order on id keeps entries in the order they were recorded.
func (r *Repository) ListEntries(ctx context.Context, owner string) ([]Entry, error) {
	query := `
		SELECT person_name, amount, timestamp
		FROM history
		WHERE username = $1
		ORDER BY timestamp DESC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.PersonName, &e.Amount, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return entries, nil
}
