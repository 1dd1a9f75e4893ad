// Package auth provides login, registration and token validation.
package auth

import (
	"mobiauto_backend/internal/auth/handler"
	"mobiauto_backend/internal/auth/service"
	apphttp "mobiauto_backend/internal/http"
	"mobiauto_backend/platform/config"
	"mobiauto_backend/platform/logger"
	"mobiauto_backend/platform/validator"
)

// Module is the auth module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module.
func NewModule(users service.Users, cfg config.AuthServiceConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(users, cfg, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes mounts auth routes. Login and register are public but
// rate-limited; validate requires no prior session either.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/auth")
	group.Use(ctx.AuthRateLimiter.RateLimit())

	group.POST("/login", m.handler.Login)
	group.POST("/register", m.handler.Register)
	group.GET("/validate", m.handler.Validate)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
