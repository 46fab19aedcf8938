// Command seed migrates the users table and loads a small set of demo
// accounts. Existing demo accounts are left untouched unless -reset is given.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"accountd/config"
	"accountd/internal/infra/persistence/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedAccount struct {
	Username string
	Email    string
	FullName string
	Password string
}

var seedAccounts = []seedAccount{
	{Username: "john123", Email: "john@example.com", FullName: "John Doe", Password: "password123"},
	{Username: "jane_smith", Email: "jane@example.com", FullName: "Jane Smith", Password: "secret456"},
	{Username: "bobbyJ", Email: "bob@example.com", FullName: "Bob Johnson", Password: "qwerty789"},
}

func main() {
	reset := flag.Bool("reset", false, "delete all existing users before seeding")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(logger, *reset); err != nil {
		logger.Error("Seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, reset bool) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}

	if err := db.AutoMigrate(&model.UserModel{}); err != nil {
		return fmt.Errorf("migrate users table: %w", err)
	}

	if reset {
		logger.Warn("Deleting all existing users")
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.UserModel{}).Error; err != nil {
			return fmt.Errorf("reset users table: %w", err)
		}
	}

	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	for _, account := range seedAccounts {
		var existing model.UserModel
		err := db.Where("email = ?", account.Email).First(&existing).Error
		if err == nil {
			logger.Info("User already seeded, skipping", slog.String("email", account.Email))

			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check existing user %s: %w", account.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), cost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", account.Email, err)
		}

		user := model.UserModel{
			Username:     account.Username,
			Email:        account.Email,
			FullName:     account.FullName,
			PasswordHash: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("create user %s: %w", account.Email, err)
		}

		logger.Info("Seeded user",
			slog.Int64("id", user.ID),
			slog.String("username", user.Username),
			slog.String("email", user.Email),
		)
	}

	return nil
}
