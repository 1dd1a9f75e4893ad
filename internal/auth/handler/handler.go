package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mobiauto_backend/internal/auth/service"
	"mobiauto_backend/internal/auth/transport"
	"mobiauto_backend/platform/httpkit"
	"mobiauto_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgMissingToken     = "missing bearer token"
)

// Handler handles authentication HTTP requests.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new auth handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Login authenticates a credential pair and returns an access token.
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Register creates a new user account.
// POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req transport.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Register(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// Validate verifies a presented bearer token.
// GET /api/v1/auth/validate
func (h *Handler) Validate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	rawToken := strings.TrimPrefix(header, "Bearer ")
	if rawToken == "" || rawToken == header {
		httpkit.Error(c, http.StatusUnauthorized, msgMissingToken, nil)
		return
	}

	result, err := h.svc.Validate(rawToken)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
