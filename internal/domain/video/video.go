package video

import (
	"fmt"
	"time"
)

// Video is a catalog entry for a course lesson. The file ID points at a
// video already uploaded to the messaging platform; we never store the
// media itself.
type Video struct {
	id        uint
	title     string
	fileID    string
	position  int
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

// NewVideo creates a new active video entry.
func NewVideo(title, fileID string, position int) (*Video, error) {
	if title == "" {
		return nil, fmt.Errorf("video title is required")
	}
	if fileID == "" {
		return nil, fmt.Errorf("video file ID is required")
	}

	now := time.Now().UTC()
	return &Video{
		title:     title,
		fileID:    fileID,
		position:  position,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructVideo reconstructs a video from persistence
func ReconstructVideo(
	id uint,
	title, fileID string,
	position int,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*Video, error) {
	if id == 0 {
		return nil, fmt.Errorf("video ID cannot be zero")
	}
	if title == "" {
		return nil, fmt.Errorf("video title is required")
	}

	return &Video{
		id:        id,
		title:     title,
		fileID:    fileID,
		position:  position,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// ID returns the video ID
func (v *Video) ID() uint {
	return v.id
}

// Title returns the lesson title
func (v *Video) Title() string {
	return v.title
}

// FileID returns the messaging-platform file identifier
func (v *Video) FileID() string {
	return v.fileID
}

// Position returns the sort position within the course
func (v *Video) Position() int {
	return v.position
}

// IsActive returns whether the video is listed
func (v *Video) IsActive() bool {
	return v.isActive
}

// CreatedAt returns when the video was added
func (v *Video) CreatedAt() time.Time {
	return v.createdAt
}

// UpdatedAt returns when the video was last updated
func (v *Video) UpdatedAt() time.Time {
	return v.updatedAt
}

// SetID sets the video ID (only for persistence layer use)
func (v *Video) SetID(id uint) error {
	if v.id != 0 {
		return fmt.Errorf("video ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("video ID cannot be zero")
	}
	v.id = id
	return nil
}
