// Package handler implements the HTTP handlers behind the account routes.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"accountd/internal/delivery/http/response"
	"accountd/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler handles the account management endpoints.
type AccountHandler struct {
	accountUsecase usecase.AccountUsecase
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountUsecase usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountUsecase: accountUsecase,
		logger:         logger,
	}
}

type createAccountRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateAccountRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	FullName string  `json:"full_name" validate:"required"`
	Username *string `json:"username"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Home responds with a short service banner.
func (h *AccountHandler) Home(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"service": "accountd",
	}, "User account service is running")
}

// HealthCheck reports liveness for probes.
func (h *AccountHandler) HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"status": "ok",
	}, "Healthy")
}

// CreateAccount handles POST /users.
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_REQUEST_BODY", "Invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.accountUsecase.CreateAccount(c.Request().Context(), &usecase.CreateAccountInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, account, "User created successfully")
}

// GetAccount handles GET /user/:id.
func (h *AccountHandler) GetAccount(c echo.Context) error {
	id, err := parseAccountID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_USER_ID", "Invalid user ID")
	}

	account, err := h.accountUsecase.GetAccount(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, account, "")
}

// ListAccounts handles GET /users.
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	accounts, err := h.accountUsecase.ListAccounts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, accounts, "")
}

// SearchAccounts handles GET /search?name=<fragment>.
func (h *AccountHandler) SearchAccounts(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return response.BadRequest(c, "MISSING_NAME_PARAMETER", "Name parameter is required")
	}

	accounts, err := h.accountUsecase.SearchAccounts(c.Request().Context(), name)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, accounts, "")
}

// UpdateAccount handles PUT /user/:id.
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	id, err := parseAccountID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_USER_ID", "Invalid user ID")
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_REQUEST_BODY", "Invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	// An empty-string username means "keep the current one", same as leaving
	// the field out of the body entirely.
	username := req.Username
	if username != nil && *username == "" {
		username = nil
	}

	account, err := h.accountUsecase.UpdateAccount(c.Request().Context(), &usecase.UpdateAccountInput{
		ID:       id,
		Email:    req.Email,
		FullName: req.FullName,
		Username: username,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, account, "User updated successfully")
}

// DeleteAccount handles DELETE /user/:id.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	id, err := parseAccountID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_USER_ID", "Invalid user ID")
	}

	if err := h.accountUsecase.DeleteAccount(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

// Login handles POST /login.
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_REQUEST_BODY", "Invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.accountUsecase.Authenticate(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, account, "Login successful")
}

// parseAccountID accepts any non-negative integer; an id that does not exist
// (including 0, which the store never assigns) surfaces as a 404 downstream.
func parseAccountID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 0 {
		return 0, errors.New("invalid user id")
	}

	return id, nil
}
