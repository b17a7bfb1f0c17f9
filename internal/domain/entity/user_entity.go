package entity

import (
	"time"
)

// User is the aggregate root for the identity side of the system.
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID        string
	Email     string
	Password  string
	Fullname  string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}
