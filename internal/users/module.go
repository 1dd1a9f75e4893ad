// Package users provides the user directory bounded context module.
package users

import (
	apphttp "mobiauto_backend/internal/http"
	"mobiauto_backend/internal/users/adapter"
	"mobiauto_backend/internal/users/handler"
	"mobiauto_backend/internal/users/repository"
	"mobiauto_backend/internal/users/service"
	"mobiauto_backend/platform/httpkit"
	"mobiauto_backend/platform/logger"
	"mobiauto_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the users bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the users module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "users"
}

// Service returns the service layer for external use (e.g., the auth module).
func (m *Module) Service() *service.Service {
	return m.service
}

// Directory returns a directory view for the opportunity engine.
func (m *Module) Directory() *adapter.Directory {
	return adapter.NewDirectory(m.repo)
}

// RegisterRoutes mounts user routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/users")

	managers := httpkit.RequireRole("ADMIN", "OWNER", "MANAGER")
	owners := httpkit.RequireRole("ADMIN", "OWNER")
	admins := httpkit.RequireRole("ADMIN")

	group.GET("", admins, m.handler.List)
	group.GET("/dealership/:id", managers, m.handler.ListByDealership)
	group.GET("/:email", managers, m.handler.GetByEmail)
	group.POST("", owners, m.handler.Create)
	group.PUT("/:email", owners, m.handler.Update)
	group.PATCH("/:email/role", owners, m.handler.UpdateRole)
	group.DELETE("/:email", admins, m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
