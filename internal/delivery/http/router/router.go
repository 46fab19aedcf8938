// Package router wires the HTTP routes to their handlers.
package router

import (
	"accountd/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// Params contains the handlers needed to register routes.
type Params struct {
	fx.In

	AccountHandler *handler.AccountHandler
}

// Router registers the HTTP routes.
type Router struct {
	accountHandler *handler.AccountHandler
}

// New creates a new router
func New(params Params) *Router {
	return &Router{
		accountHandler: params.AccountHandler,
	}
}

// RegisterRoutes registers all routes on the echo instance.
func (r *Router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", r.accountHandler.Home)
	e.GET("/health", r.accountHandler.HealthCheck)

	e.GET("/users", r.accountHandler.ListAccounts)
	e.POST("/users", r.accountHandler.CreateAccount)
	e.GET("/user/:id", r.accountHandler.GetAccount)
	e.PUT("/user/:id", r.accountHandler.UpdateAccount)
	e.DELETE("/user/:id", r.accountHandler.DeleteAccount)

	e.GET("/search", r.accountHandler.SearchAccounts)
	e.POST("/login", r.accountHandler.Login)
}
