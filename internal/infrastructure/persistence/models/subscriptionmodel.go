package models

import "time"

// SubscriptionModel is the GORM model for the subscriptions table. EndDate
// is NULL for lifetime subscriptions.
type SubscriptionModel struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"`
	UserID    int64      `gorm:"column:user_id;not null;index"`
	PlanID    uint       `gorm:"column:plan_id;not null"`
	StartDate time.Time  `gorm:"column:start_date;not null"`
	EndDate   *time.Time `gorm:"column:end_date;index"`
	IsActive  bool       `gorm:"column:is_active;default:true;index"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
