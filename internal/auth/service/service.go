package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mobiauto_backend/internal/auth/transport"
	usersrepo "mobiauto_backend/internal/users/repository"
	userstransport "mobiauto_backend/internal/users/transport"
	"mobiauto_backend/platform/apperr"
	"mobiauto_backend/platform/config"
	"mobiauto_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "mobiauto"

// Users is the slice of the user directory the auth module needs.
type Users interface {
	VerifyCredentials(ctx context.Context, email, password string) (usersrepo.User, error)
	Create(ctx context.Context, req userstransport.CreateUserRequest) (userstransport.UserResponse, error)
}

// Service issues and verifies access tokens.
type Service struct {
	users Users
	cfg   config.AuthServiceConfig
	log   *logger.Logger
	now   func() time.Time
}

// New creates a new auth service.
func New(users Users, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{users: users, cfg: cfg, log: log, now: time.Now}
}

// Login verifies a credential pair and issues a signed token.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.TokenResponse, error) {
	user, err := s.users.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		s.log.AuthEvent("login", req.Email, false, "invalid credentials")
		return transport.TokenResponse{}, err
	}

	expiresAt := s.now().UTC().Add(s.cfg.GetAccessTokenTTL())
	token, err := s.issueToken(user, expiresAt)
	if err != nil {
		return transport.TokenResponse{}, err
	}

	s.log.AuthEvent("login", req.Email, true, "")
	return transport.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.Format(time.RFC3339),
	}, nil
}

// Register creates a new user through the directory rules and logs the event.
func (s *Service) Register(ctx context.Context, req transport.RegisterRequest) (userstransport.UserResponse, error) {
	user, err := s.users.Create(ctx, req)
	if err != nil {
		s.log.AuthEvent("register", req.Email, false, err.Error())
		return userstransport.UserResponse{}, err
	}

	s.log.AuthEvent("register", req.Email, true, "")
	return user, nil
}

// Validate verifies a presented token and returns the identity it carries.
func (s *Service) Validate(rawToken string) (transport.ValidateResponse, error) {
	parsed, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.cfg.GetJWTSecret()), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return transport.ValidateResponse{}, apperr.Unauthorized("invalid or expired token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return transport.ValidateResponse{}, apperr.Unauthorized("invalid or expired token")
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return transport.ValidateResponse{UserID: sub, Email: email, Role: role}, nil
}

func (s *Service) issueToken(user usersrepo.User, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iss":   tokenIssuer,
		"iat":   s.now().UTC().Unix(),
		"exp":   expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.GetJWTSecret()))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
