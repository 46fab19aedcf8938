// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"
)

// --- Input DTOs ---

// CreateAccountInput defines the data required to create a new account.
type CreateAccountInput struct {
	Username string
	Email    string
	FullName string
	Password string
}

// UpdateAccountInput defines the data for a partial account update.
// Email and FullName are always overwritten; a nil Username keeps the
// existing value.
type UpdateAccountInput struct {
	ID       int64
	Email    string
	FullName string
	Username *string
}

// LoginInput defines the data required to authenticate an account.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTO ---

// Account is the public projection of a user: everything except the
// password hash. It is the only shape the delivery layer ever sees.
type Account struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	CreateAccount(ctx context.Context, input *CreateAccountInput) (*Account, error)
	GetAccount(ctx context.Context, id int64) (*Account, error)
	ListAccounts(ctx context.Context) ([]*Account, error)
	SearchAccounts(ctx context.Context, nameFragment string) ([]*Account, error)
	UpdateAccount(ctx context.Context, input *UpdateAccountInput) (*Account, error)
	DeleteAccount(ctx context.Context, id int64) error

	// Authenticate verifies an email/password pair. An unknown email and a
	// wrong password both fail with ErrInvalidCredentials; the caller can
	// never tell which one happened.
	Authenticate(ctx context.Context, input *LoginInput) (*Account, error)
}
