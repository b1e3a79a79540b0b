package models

import "time"

// VideoModel is the GORM model for the videos table.
type VideoModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"column:title;type:varchar(255);not null"`
	FileID    string    `gorm:"column:file_id;type:varchar(255);not null"`
	Position  int       `gorm:"column:position;default:0"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (VideoModel) TableName() string {
	return "videos"
}
