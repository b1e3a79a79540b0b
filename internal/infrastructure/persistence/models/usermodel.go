package models

import "time"

// UserModel is the GORM model for the users table. The primary key is the
// Telegram user ID, not an auto-increment.
type UserModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	Username  string    `gorm:"column:username;type:varchar(255)"`
	FullName  string    `gorm:"column:full_name;type:varchar(255)"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}
