// Package dealerships provides the dealership registry bounded context module.
package dealerships

import (
	"mobiauto_backend/internal/dealerships/handler"
	"mobiauto_backend/internal/dealerships/repository"
	"mobiauto_backend/internal/dealerships/service"
	apphttp "mobiauto_backend/internal/http"
	"mobiauto_backend/platform/httpkit"
	"mobiauto_backend/platform/logger"
	"mobiauto_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the dealerships bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the dealerships module.
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
	return "dealerships"
}

// RegisterRoutes mounts dealership routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/dealerships")

	owners := httpkit.RequireRole("ADMIN", "OWNER")
	admins := httpkit.RequireRole("ADMIN")

	group.GET("", owners, m.handler.List)
	group.GET("/:id", owners, m.handler.GetByID)
	group.POST("", admins, m.handler.Create)
	group.PUT("/:id", admins, m.handler.Update)
	group.DELETE("/:id", admins, m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
