package impl

import (
	"context"
	"testing"

	domainerrors "accountd/internal/domain/errors"
	"accountd/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_CreateAccount_ThenGet(t *testing.T) {
	fx := createTestAccountService()
	ctx := context.Background()

	created, err := fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Username: "john123",
		Email:    "john@example.com",
		FullName: "John Doe",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Positive(t, created.ID)

	fetched, err := fx.service.GetAccount(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "john123", fetched.Username)
	assert.Equal(t, "john@example.com", fetched.Email)
	assert.Equal(t, "John Doe", fetched.FullName)
}

func TestAccountService_CreateAccount_StoresHashNotPlaintext(t *testing.T) {
	fx := createTestAccountService()
	ctx := context.Background()

	_, err := fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Username: "john123",
		Email:    "john@example.com",
		FullName: "John Doe",
		Password: "password123",
	})
	require.NoError(t, err)

	stored, err := fx.repo.FindByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestAccountService_CreateAccount_DuplicateUsername(t *testing.T) {
	fx := createTestAccountService()
	ctx := context.Background()

	_, err := fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Username: "john123", Email: "john@example.com", FullName: "John Doe", Password: "password123",
	})
	require.NoError(t, err)

	_, err = fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Username: "john123", Email: "other@example.com", FullName: "Other John", Password: "password123",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAccountService_CreateAccount_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService()
	ctx := context.Background()

	_, err := fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Username: "john123", Email: "john@example.com", FullName: "John Doe", Password: "password123",
	})
	require.NoError(t, err)

	_, err = fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Username: "john456", Email: "john@example.com", FullName: "Other John", Password: "password123",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAccountService_GetAccount_NotFound(t *testing.T) {
	fx := createTestAccountService()

	_, err := fx.service.GetAccount(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAccountService_ListAccounts_OrderedByID(t *testing.T) {
	fx := createTestAccountService()
	require.NoError(t, seedFixtureAccounts(fx))

	accounts, err := fx.service.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "john123", accounts[0].Username)
	assert.Equal(t, "jane_smith", accounts[1].Username)
	assert.Equal(t, "bobbyJ", accounts[2].Username)
}

func TestAccountService_SearchAccounts_Substring(t *testing.T) {
	fx := createTestAccountService()
	require.NoError(t, seedFixtureAccounts(fx))
	ctx := context.Background()

	matches, err := fx.service.SearchAccounts(ctx, "oe")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "John Doe", matches[0].FullName)

	matches, err = fx.service.SearchAccounts(ctx, "o")
	require.NoError(t, err)
	assert.Len(t, matches, 2) // John Doe, Bob Johnson
}

func TestAccountService_SearchAccounts_EmptyQueryMatchesAll(t *testing.T) {
	fx := createTestAccountService()
	require.NoError(t, seedFixtureAccounts(fx))

	matches, err := fx.service.SearchAccounts(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestAccountService_SearchAccounts_NoMatches(t *testing.T) {
	fx := createTestAccountService()
	require.NoError(t, seedFixtureAccounts(fx))

	matches, err := fx.service.SearchAccounts(context.Background(), "Zelda")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestAccountService_UpdateAccount_KeepsUsernameWhenOmitted(t *testing.T) {
	fx := createTestAccountService()
	require.NoError(t, seedFixtureAccounts(fx))
	ctx := context.Background()

	accounts, err := fx.service.ListAccounts(ctx)
	require.NoError(t, err)
	john := accounts[0]

	updated, err := fx.service.UpdateAccount(ctx, &usecase.UpdateAccountInput{
		ID:       john.ID,
		Email:    "john.doe@example.com",
		FullName: "Johnny Doe",
		Username: nil,
	})
	require.NoError(t, err)
	assert.Equal(t, "john123", updated.Username)
	assert.Equal(t, "john.doe@example.com", updated.Email)
	assert.Equal(t, "Johnny Doe", updated.FullName)
}

func TestAccountService_UpdateAccount_ReplacesUsernameWhenProvided(t *testing.T) {
	fx := createTestAccountService()
	require.NoError(t, seedFixtureAccounts(fx))
	ctx := context.Background()

	accounts, err := fx.service.ListAccounts(ctx)
	require.NoError(t, err)
	john := accounts[0]

	newUsername := "johnny"
	updated, err := fx.service.UpdateAccount(ctx, &usecase.UpdateAccountInput{
		ID:       john.ID,
		Email:    john.Email,
		FullName: john.FullName,
		Username: &newUsername,
	})
	require.NoError(t, err)
	assert.Equal(t, "johnny", updated.Username)
}

func TestAccountService_UpdateAccount_NotFoundLeavesRelationUnchanged(t *testing.T) {
	fx := createTestAccountService()
	require.NoError(t, seedFixtureAccounts(fx))
	ctx := context.Background()

	before, err := fx.service.ListAccounts(ctx)
	require.NoError(t, err)

	_, err = fx.service.UpdateAccount(ctx, &usecase.UpdateAccountInput{
		ID:       9999,
		Email:    "ghost@example.com",
		FullName: "Ghost",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	after, err := fx.service.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAccountService_UpdateAccount_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService()
	require.NoError(t, seedFixtureAccounts(fx))
	ctx := context.Background()

	accounts, err := fx.service.ListAccounts(ctx)
	require.NoError(t, err)
	john := accounts[0]

	_, err = fx.service.UpdateAccount(ctx, &usecase.UpdateAccountInput{
		ID:       john.ID,
		Email:    "jane@example.com", // already taken by jane_smith
		FullName: john.FullName,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAccountService_DeleteAccount(t *testing.T) {
	fx := createTestAccountService()
	require.NoError(t, seedFixtureAccounts(fx))
	ctx := context.Background()

	accounts, err := fx.service.ListAccounts(ctx)
	require.NoError(t, err)
	john := accounts[0]

	require.NoError(t, fx.service.DeleteAccount(ctx, john.ID))

	_, err = fx.service.GetAccount(ctx, john.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	// Deleting twice reports not found the second time.
	err = fx.service.DeleteAccount(ctx, john.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAccountService_Authenticate_Success(t *testing.T) {
	fx := createTestAccountService()
	require.NoError(t, seedFixtureAccounts(fx))

	account, err := fx.service.Authenticate(context.Background(), &usecase.LoginInput{
		Email:    "john@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "john123", account.Username)
	assert.Equal(t, "John Doe", account.FullName)
}

func TestAccountService_Authenticate_FailuresAreIndistinguishable(t *testing.T) {
	fx := createTestAccountService()
	require.NoError(t, seedFixtureAccounts(fx))
	ctx := context.Background()

	_, wrongPassErr := fx.service.Authenticate(ctx, &usecase.LoginInput{
		Email:    "john@example.com",
		Password: "wrong-password",
	})
	require.Error(t, wrongPassErr)
	assert.ErrorIs(t, wrongPassErr, domainerrors.ErrInvalidCredentials)

	_, unknownEmailErr := fx.service.Authenticate(ctx, &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	require.Error(t, unknownEmailErr)
	assert.ErrorIs(t, unknownEmailErr, domainerrors.ErrInvalidCredentials)
}
