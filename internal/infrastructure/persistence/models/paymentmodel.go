package models

import "time"

// PaymentModel is the GORM model for the payments table. ChargeID carries a
// unique index; it is the idempotency anchor for payment confirmations.
type PaymentModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	Amount    int64     `gorm:"column:amount;not null"`
	Currency  string    `gorm:"column:currency;type:varchar(10);not null"`
	Provider  string    `gorm:"column:provider;type:varchar(100)"`
	ChargeID  string    `gorm:"column:charge_id;type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}
