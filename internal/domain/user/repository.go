package user

import "context"

type UserRepository interface {
	// Upsert creates the user on first contact or refreshes the profile
	// fields on subsequent ones.
	Upsert(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	ListIDs(ctx context.Context) ([]int64, error)
	// ListRecent returns the most recently registered users, newest first.
	ListRecent(ctx context.Context, limit int) ([]*User, error)
	Count(ctx context.Context) (int64, error)
}
