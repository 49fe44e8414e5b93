package entity

import "time"

// Preference records that a user likes a university. At most one row exists
// per (user, university) pair; absence of a row means no preference.
type Preference struct {
	ID           string
	UserID       string
	UniversityID string
	CreatedAt    time.Time
}
