package video

import "context"

type VideoRepository interface {
	Create(ctx context.Context, video *Video) error
	GetByID(ctx context.Context, id uint) (*Video, error)
	// ListActive returns listed videos ordered by position.
	ListActive(ctx context.Context) ([]*Video, error)
}
