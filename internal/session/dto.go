package session

import (
	"time"

	"github.com/fkhayef/billsplit/internal/split"
)

// ComputeSplitRequest represents the request body for computing a split.
// Total and amounts arrive as raw strings, matching the free-text currency
// inputs clients collect; a malformed value is rejected as INVALID_AMOUNT
// naming the field rather than silently coerced.
type ComputeSplitRequest struct {
	SplitType    string   `json:"split_type" validate:"required,oneof=EVEN CUSTOM"`
	Total        string   `json:"total" validate:"required"`
	Participants []string `json:"participants" validate:"required,min=1"`
	Amounts      []string `json:"amounts,omitempty"` // one per participant, CUSTOM only
}

// SplitResponse represents the computed per-person obligations
type SplitResponse struct {
	SplitType string              `json:"split_type"`
	Total     float64             `json:"total"`
	Entries   []split.Participant `json:"entries"`
}

// EntryRequest is one finalized participant amount to record
type EntryRequest struct {
	Name   string  `json:"name" validate:"required"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

// RecordSessionRequest represents the request body for recording a session
type RecordSessionRequest struct {
	Entries []EntryRequest `json:"entries" validate:"required,min=1"`
}

// SessionResponse represents one recorded session
type SessionResponse struct {
	Owner     string              `json:"owner"`
	Timestamp string              `json:"timestamp"`
	Entries   []split.Participant `json:"entries"`
}

// ToResponse converts a Session model to a SessionResponse DTO
func (s *Session) ToResponse() *SessionResponse {
	return &SessionResponse{
		Owner:     s.Owner,
		Timestamp: s.Timestamp.Format(time.RFC3339Nano),
		Entries:   s.Entries,
	}
}
