// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "accountd/internal/delivery/context"
	"accountd/internal/domain/entity"
	domainerrors "accountd/internal/domain/errors"
	"accountd/internal/domain/repository"
	"accountd/internal/domain/service"
	"accountd/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// dummyPasswordHash is a valid bcrypt digest of a throwaway string. When a
// login targets an unknown email, the service still runs one bcrypt
// comparison against it so the unknown-email and wrong-password failures
// stay in the same timing class.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// AccountServiceParams holds dependencies for the account service, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateAccount hashes the password and persists the new user. The uniqueness
// of username and email is enforced by the store; a collision surfaces as
// ErrUserAlreadyExists.
func (srv *accountService) CreateAccount(ctx context.Context, input *usecase.CreateAccountInput) (*usecase.Account, error) {
	srv.log(ctx).Info("Creating account", slog.String("username", input.Username), slog.String("email", input.Email))

	// Hash outside the transaction (bcrypt is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during account creation", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
	}

	newUser := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Account creation failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute account creation transaction")
	}

	srv.log(ctx).Debug("Account created", slog.Int64("userID", newUser.ID))

	return toAccount(newUser), nil
}

// GetAccount returns the public fields of a single account.
func (srv *accountService) GetAccount(ctx context.Context, id int64) (*usecase.Account, error) {
	// Single query operation - use direct repository instance.
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("account lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toAccount(user), nil
}

// ListAccounts returns every account, ordered by ID.
func (srv *accountService) ListAccounts(ctx context.Context) ([]*usecase.Account, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return toAccounts(users), nil
}

// SearchAccounts returns the accounts whose full name contains the fragment.
func (srv *accountService) SearchAccounts(ctx context.Context, nameFragment string) ([]*usecase.Account, error) {
	users, err := srv.userRepo.SearchByFullName(ctx, nameFragment)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search users")
	}

	return toAccounts(users), nil
}

// UpdateAccount overwrites email and full name and, when provided, the
// username. The read-modify-write runs in one transaction so concurrent
// updates cannot interleave, and a uniqueness collision introduced by the
// new values surfaces as ErrUserAlreadyExists.
func (srv *accountService) UpdateAccount(ctx context.Context, input *usecase.UpdateAccountInput) (*usecase.Account, error) {
	srv.log(ctx).Info("Updating account", slog.Int64("userID", input.ID))

	var updated *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("account update failed")
			}

			return errors.Wrap(err, "failed to find user by id")
		}

		user.Email = input.Email
		user.FullName = input.FullName
		if input.Username != nil {
			user.Username = *input.Username
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user")
		}

		// Reload so the caller sees the stored timestamps.
		updated, err = userRepo.FindByID(ctx, user.ID)
		if err != nil {
			return errors.Wrap(err, "failed to reload user after update")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Account update failed", slog.Int64("userID", input.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute account update transaction")
	}

	srv.log(ctx).Debug("Account updated", slog.Int64("userID", updated.ID))

	return toAccount(updated), nil
}

// DeleteAccount removes the account irrevocably.
func (srv *accountService) DeleteAccount(ctx context.Context, id int64) error {
	srv.log(ctx).Info("Deleting account", slog.Int64("userID", id))

	// Single operation - use direct repository instance.
	if err := srv.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("account deletion failed")
		}

		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Debug("Account deleted", slog.Int64("userID", id))

	return nil
}

// Authenticate verifies an email/password pair and returns the public
// account on success. Unknown email and wrong password both fail with
// ErrInvalidCredentials and both cost one bcrypt comparison.
func (srv *accountService) Authenticate(ctx context.Context, input *usecase.LoginInput) (*usecase.Account, error) {
	srv.log(ctx).Debug("Authenticating account", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn the same work as a real comparison before failing.
			srv.hasher.Check(input.Password, dummyPasswordHash)
			srv.log(ctx).Warn("Authentication failed", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "authentication failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Authentication failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "authentication failed")
	}

	srv.log(ctx).Debug("Account authenticated", slog.Int64("userID", user.ID))

	return toAccount(user), nil
}

// toAccount maps a domain user to its public projection.
func toAccount(user *entity.User) *usecase.Account {
	return &usecase.Account{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func toAccounts(users []*entity.User) []*usecase.Account {
	accounts := make([]*usecase.Account, 0, len(users))
	for _, user := range users {
		accounts = append(accounts, toAccount(user))
	}

	return accounts
}
