// Package usecase defines the application's use case interfaces and their DTOs.
package usecase

import (
	"context"

	"condor/internal/domain/entity"
)

// RegisterInput carries the data needed to create a new resident account.
type RegisterInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Building string `json:"building"`
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthOutput is returned by Register and Login.
type AuthOutput struct {
	User        *entity.User `json:"user"`
	AccessToken string       `json:"accessToken"`
}

// UserUsecase defines account management use cases.
type UserUsecase interface {
	// Register creates a new account, emits the welcome notification and
	// returns the user with a fresh access token.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and returns the user with a fresh access token.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// GetProfile returns the account record for the given user id.
	GetProfile(ctx context.Context, userID int64) (*entity.User, error)
}
