package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"accountd/config"
	"accountd/internal/domain/entity"
	domainerrors "accountd/internal/domain/errors"
	"accountd/internal/domain/repository"
	"accountd/internal/infra/auth"
	"accountd/internal/usecase"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryUserRepository is an in-memory stand-in for the postgres repository.
// It enforces the same uniqueness and not-found semantics so service tests
// exercise the real error paths.
type memoryUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entity.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[int64]*entity.User)}
}

func (repo *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("username or email already exists")
		}
	}

	repo.nextID++
	user.ID = repo.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	repo.users[user.ID] = cloneUser(user)

	return nil
}

func (repo *memoryUserRepository) FindByID(_ context.Context, id int64) (*entity.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

func (repo *memoryUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, user := range repo.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (repo *memoryUserRepository) FindAll(_ context.Context) ([]*entity.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	return repo.sortedUsersLocked(func(*entity.User) bool { return true }), nil
}

func (repo *memoryUserRepository) SearchByFullName(_ context.Context, fragment string) ([]*entity.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	return repo.sortedUsersLocked(func(user *entity.User) bool {
		return strings.Contains(user.FullName, fragment)
	}), nil
}

func (repo *memoryUserRepository) Update(_ context.Context, user *entity.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	existing, ok := repo.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}

	for id, other := range repo.users {
		if id == user.ID {
			continue
		}
		if other.Username == user.Username || other.Email == user.Email {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("username or email already exists")
		}
	}

	existing.Username = user.Username
	existing.Email = user.Email
	existing.FullName = user.FullName
	existing.UpdatedAt = time.Now()

	return nil
}

func (repo *memoryUserRepository) Delete(_ context.Context, id int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(repo.users, id)

	return nil
}

func (repo *memoryUserRepository) sortedUsersLocked(match func(*entity.User) bool) []*entity.User {
	users := make([]*entity.User, 0, len(repo.users))
	for _, user := range repo.users {
		if match(user) {
			users = append(users, cloneUser(user))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users
}

func cloneUser(user *entity.User) *entity.User {
	cloned := *user

	return &cloned
}

// memoryTransactionManager runs the callback directly against the in-memory
// repository; the fake is already atomic under its mutex.
type memoryTransactionManager struct {
	repo *memoryUserRepository
}

func (tm *memoryTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(memoryRepositoryFactory{repo: tm.repo})
}

type memoryRepositoryFactory struct {
	repo *memoryUserRepository
}

func (f memoryRepositoryFactory) UserRepo() repository.UserRepository {
	return f.repo
}

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service usecase.AccountUsecase
	repo    *memoryUserRepository
}

func createTestAccountService() accountServiceFixtures {
	repo := newMemoryUserRepository()
	// Real bcrypt hasher at minimum cost: the hashing semantics are part of
	// what these tests assert.
	hasher := auth.NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 4}})

	service := NewAccountService(AccountServiceParams{
		TxManager: &memoryTransactionManager{repo: repo},
		UserRepo:  repo,
		Hasher:    hasher,
		Logger:    newDiscardLogger(),
	})

	return accountServiceFixtures{service: service, repo: repo}
}

func seedFixtureAccounts(fx accountServiceFixtures) error {
	seeds := []*usecase.CreateAccountInput{
		{Username: "john123", Email: "john@example.com", FullName: "John Doe", Password: "password123"},
		{Username: "jane_smith", Email: "jane@example.com", FullName: "Jane Smith", Password: "secret456"},
		{Username: "bobbyJ", Email: "bob@example.com", FullName: "Bob Johnson", Password: "qwerty789"},
	}

	for _, seed := range seeds {
		if _, err := fx.service.CreateAccount(context.Background(), seed); err != nil {
			return err
		}
	}

	return nil
}
