package user

import (
	"time"

	"github.com/google/uuid"

	domainUser "auth-service/internal/domain/user"
)

const (
	TokenTypeBearer = "bearer"

	ForgotPasswordMessage = "If this email exists, a reset link was sent."
	CodeVerifiedMessage   = "Code verified"
	PasswordResetMessage  = "Password updated successfully"
	TokenValidMessage     = "Token is valid"
)

type RegisterRequest struct {
	FirstName string `json:"first_Name" validate:"max=100"`
	LastName  string `json:"last_Name" validate:"max=100"`
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Password  string `json:"password" validate:"required"`
	Email     string `json:"email" validate:"required,email,max=255"`
}

// LoginRequest binds the OAuth2 password form as well as JSON.
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyResetCodeRequest struct {
	Token string `json:"token" validate:"required"`
	Code  string `json:"code" validate:"required,reset_code"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	Code        string `json:"code" validate:"required,reset_code"`
	NewPassword string `json:"new_password" validate:"required"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_Name"`
	LastName  string    `json:"last_Name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

type VerifyTokenResponse struct {
	Message string `json:"message"`
	User    string `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ToUserResponse drops the password hash.
func ToUserResponse(u *domainUser.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
