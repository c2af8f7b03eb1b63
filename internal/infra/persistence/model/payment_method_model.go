package model

import "time"

// PaymentMethodModel mirrors the 'payment_methods' table. Card numbers are
// stored already masked, never in full.
type PaymentMethodModel struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	UserID         int64  `gorm:"not null;index"`
	Kind           string `gorm:"type:varchar(10);not null"`
	CardNumber     string `gorm:"type:varchar(20)"`
	CardholderName string `gorm:"type:varchar(100)"`
	ExpiryDate     string `gorm:"type:varchar(7)"`
	Brand          string `gorm:"type:varchar(30)"`
	Preferred      bool   `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (PaymentMethodModel) TableName() string {
	return "payment_methods"
}
