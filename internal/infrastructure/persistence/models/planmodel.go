package models

import "time"

// PlanModel is the GORM model for the plans table. DurationDays is NULL for
// lifetime plans; Price is in minor currency units.
type PlanModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name;type:varchar(100);not null"`
	DurationDays *int      `gorm:"column:duration_days"`
	Price        int64     `gorm:"column:price;not null"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (PlanModel) TableName() string {
	return "plans"
}
