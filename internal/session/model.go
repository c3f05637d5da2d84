package session

import (
	"time"

	"github.com/fkhayef/billsplit/internal/split"
)

// Session is one persisted, immutable record of a completed split: who
// recorded it, when, and what each participant owes. Sessions are never
// edited in place; a new split produces a new session.
type Session struct {
	Owner     string              `json:"owner"`
	Timestamp time.Time           `json:"timestamp"`
	Entries   []split.Participant `json:"entries"`
}

// Entry is one stored history row. The store keeps one row per participant;
// rows sharing (owner, timestamp) form one session.
type Entry struct {
	PersonName string
	Amount     float64
	Timestamp  time.Time
}
