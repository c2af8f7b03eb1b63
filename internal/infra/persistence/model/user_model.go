// Package model holds the GORM-specific structs mirroring the database tables.
package model

import (
	"time"
)

// UserModel mirrors the 'users' table. IDs are bigserial.
type UserModel struct {
	ID                 int64   `gorm:"primaryKey;autoIncrement"`
	FullName           string  `gorm:"type:varchar(100);not null"`
	Email              string  `gorm:"type:varchar(255);unique;not null"`
	Phone              string  `gorm:"type:varchar(30)"`
	PasswordHash       string  `gorm:"type:varchar(255);not null"`
	Building           string  `gorm:"type:varchar(100)"`
	NotificationsCount int     `gorm:"not null;default:0"`
	CashbackBalance    float64 `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
