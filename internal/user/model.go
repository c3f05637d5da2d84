package user

import "time"

// User represents a registered account. The password is stored only as a
// bcrypt hash; it never leaves this package in any response.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
