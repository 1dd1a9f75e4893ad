// Package opportunities provides the opportunity bounded context module.
// It owns the sales lead lifecycle and the load-balancing distribution engine.
package opportunities

import (
	"mobiauto_backend/internal/events"
	apphttp "mobiauto_backend/internal/http"
	"mobiauto_backend/internal/opportunities/handler"
	"mobiauto_backend/internal/opportunities/repository"
	"mobiauto_backend/internal/opportunities/service"
	"mobiauto_backend/platform/httpkit"
	"mobiauto_backend/platform/logger"
	"mobiauto_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the opportunities bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the opportunities module.
// directory resolves staff records; lock may be nil (unserialized runs).
func NewModule(pool *pgxpool.Pool, directory service.Directory, bus events.Bus, lock service.RunLock, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, directory, bus, lock, log)
	h := handler.New(svc, val, log)
	if bus != nil {
		service.NewObserver(bus, log)
	}

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "opportunities"
}

// Service returns the service layer for external use (e.g., the distributor worker).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts opportunity routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/opportunities")

	managers := httpkit.RequireRole("ADMIN", "OWNER", "MANAGER")
	owners := httpkit.RequireRole("ADMIN", "OWNER")
	admins := httpkit.RequireRole("ADMIN")

	group.GET("", managers, m.handler.List)
	group.GET("/:id", managers, m.handler.GetByID)
	group.GET("/assignee/:id", managers, m.handler.ListByAssignee)
	group.POST("", managers, m.handler.Create)
	group.PUT("/:id", managers, m.handler.Update)
	group.DELETE("/:id", owners, m.handler.Delete)
	group.PATCH("/:id/assign", managers, m.handler.Assign)
	group.PATCH("/:id/status", managers, m.handler.UpdateStatus)
	group.POST("/distribute", admins, m.handler.Distribute)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
