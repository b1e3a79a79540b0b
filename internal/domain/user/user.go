package user

import (
	"fmt"
	"time"
)

// User is the external Telegram identity. The ID is assigned by the
// messaging platform, not by us; rows are created on first contact and
// never deleted.
type User struct {
	id        int64
	username  string
	fullName  string
	createdAt time.Time
}

// NewUser creates a user from their Telegram identity.
func NewUser(id int64, username, fullName string) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("telegram user ID is required")
	}

	return &User{
		id:        id,
		username:  username,
		fullName:  fullName,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructUser reconstructs a user from persistence
func ReconstructUser(id int64, username, fullName string, createdAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("telegram user ID is required")
	}

	return &User{
		id:        id,
		username:  username,
		fullName:  fullName,
		createdAt: createdAt,
	}, nil
}

// ID returns the Telegram user ID
func (u *User) ID() int64 {
	return u.id
}

// Username returns the Telegram username, possibly empty
func (u *User) Username() string {
	return u.username
}

// FullName returns the display name
func (u *User) FullName() string {
	return u.fullName
}

// CreatedAt returns when the user first contacted the bot
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdateIdentity refreshes the mutable Telegram profile fields.
func (u *User) UpdateIdentity(username, fullName string) {
	u.username = username
	u.fullName = fullName
}
