// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"accountd/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
// Every method is a single atomic unit of work against the relation.
type UserRepository interface {
	// Create persists a new user and writes the generated ID and timestamps
	// back into the entity. A username or email collision surfaces as
	// domainerrors.ErrUserAlreadyExists.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address,
	// password hash included. Only the authentication path needs this.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindAll returns every user, ordered by ID ascending.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// SearchByFullName returns the users whose full name contains the
	// fragment as a substring, ordered by ID ascending. An empty fragment
	// matches every row.
	SearchByFullName(ctx context.Context, fragment string) ([]*entity.User, error)

	// Update overwrites the mutable columns of an existing user. A uniqueness
	// collision surfaces as domainerrors.ErrUserAlreadyExists.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user with the given ID irrevocably.
	// Returns ErrUserNotFound when no row has that ID.
	Delete(ctx context.Context, id int64) error
}
