package entity

import "time"

// University statuses. Admissions default to closed until an operator opens
// them from the console.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// University represents an institution users can browse and like.
type University struct {
	ID        string
	Name      string
	Location  string
	Website   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidStatus reports whether s is a recognized admission status.
func ValidStatus(s string) bool {
	return s == StatusOpen || s == StatusClosed
}
