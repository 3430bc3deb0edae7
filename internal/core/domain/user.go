package domain

import "time"

// User is a registered account. Email is unique across the store.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Company      string    `json:"company"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session binds an opaque bearer token to the user it was issued for.
// Sessions carry no expiry: a stored token stays valid until its row is removed.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
}
