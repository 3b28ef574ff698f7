package models

import "time"

// Session is a server-side login record. Its refresh token and
// client fingerprint gate access-token renewal.
type Session struct {
	ID           string
	UserID       string
	Fingerprint  string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
