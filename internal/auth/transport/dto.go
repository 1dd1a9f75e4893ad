package transport

import userstransport "mobiauto_backend/internal/users/transport"

// LoginRequest is the payload for password authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresAt   string `json:"expiresAt"`
}

// RegisterRequest aliases the user creation payload; registration goes
// through the same directory rules.
type RegisterRequest = userstransport.CreateUserRequest

// ValidateResponse describes the identity carried by a verified token.
type ValidateResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
