package repository

import "time"

// User represents a users row.
type User struct {
	ID        string
	Username  string
	FullName  string
	Bio       string
	Location  string
	CreatedAt time.Time
}

// Team represents a teams row.
type Team struct {
	ID          string
	Name        string
	Description string
	MemberCount int
}

// Assertion states as stored.
const (
	AssertionValid   = "valid"
	AssertionBroken  = "broken"
	AssertionRevoked = "revoked"
)

// Assertion represents an identity proof attached to a user.
type Assertion struct {
	UserID  string
	Key     string
	State   string
	AddedAt time.Time
}
