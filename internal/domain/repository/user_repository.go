// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"condor/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail retrieves a single user by email, matched case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity and fills in the generated ID.
	Create(ctx context.Context, user *entity.User) error

	// CreditCashback atomically adds amount to the user's cashback balance.
	CreditCashback(ctx context.Context, userID int64, amount float64) error

	// AdjustUnreadCount adds delta to the user's unread notification counter,
	// flooring the result at zero.
	AdjustUnreadCount(ctx context.Context, userID int64, delta int) error

	// ResetUnreadCount sets the user's unread notification counter to exactly zero.
	ResetUnreadCount(ctx context.Context, userID int64) error
}
