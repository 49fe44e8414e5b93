package entity

import "time"

// User is the aggregate root for the user domain.
// PasswordHash holds a bcrypt digest; plaintext passwords never leave the
// signup/login/reset request paths.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Gender       string
	PhoneNumber  string
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
