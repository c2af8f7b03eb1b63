// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User represents a resident account in the condominium center.
// The cashback balance and the unread notification counter are the only
// fields mutated after creation: the balance by checkout, the counter by
// notification reads and writes.
type User struct {
	ID                 int64     `json:"id"`
	FullName           string    `json:"fullName"`
	Email              string    `json:"email"` // Unique, compared case-insensitively.
	Phone              string    `json:"phone"`
	PasswordHash       string    `json:"-"`
	Building           string    `json:"building,omitempty"` // Optional building/unit identifier.
	NotificationsCount int       `json:"notificationsCount"` // Number of unread notifications.
	CashbackBalance    float64   `json:"cashbackBalance"`    // Non-negative spendable balance in reais.
	CreatedAt          time.Time `json:"createdAt"`
}
