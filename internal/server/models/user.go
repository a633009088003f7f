package models

import "time"

// User is the identity record owned by the credential store. Username is
// unique and immutable after registration; PasswordHash is a bcrypt hash
// and never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Nickname     string    `json:"nickname,omitempty"`
	CreatedAt    time.Time `json:"-"`
}
