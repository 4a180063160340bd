package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainUser "auth-service/internal/domain/user"
	"auth-service/internal/middleware"
	"auth-service/internal/usecase/user"
	"auth-service/pkg/utils"
)

// AuthService is the part of user.Service the HTTP layer depends on.
type AuthService interface {
	Register(ctx context.Context, req *user.RegisterRequest) (*user.UserResponse, error)
	Login(ctx context.Context, req *user.LoginRequest) (*user.TokenResponse, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	CurrentUser(ctx context.Context, token string) (*domainUser.User, error)
	ForgotPassword(ctx context.Context, req *user.ForgotPasswordRequest) (*user.MessageResponse, error)
	VerifyResetCode(ctx context.Context, req *user.VerifyResetCodeRequest) (*user.MessageResponse, error)
	ResetPassword(ctx context.Context, req *user.ResetPasswordRequest) (*user.MessageResponse, error)
}

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/register", h.Register)
	router.POST("/api/token", h.Login)
	router.GET("/verify-token", h.VerifyToken)
	router.GET("/users/me", h.Me)

	reset := router.Group("/api/auth")
	{
		reset.POST("/forgot-password", h.ForgotPassword)
		reset.POST("/verify-reset-code", h.VerifyResetCode)
		reset.POST("/reset-password", h.ResetPassword)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)
	req.Username = utils.SanitizeUsername(req.Username)
	req.FirstName = utils.SanitizeString(req.FirstName)
	req.LastName = utils.SanitizeString(req.LastName)

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, resp)
}

// Login accepts the OAuth2 password form; JSON bodies bind as well.
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest

	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	req.Username = utils.SanitizeUsername(req.Username)

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, resp)
}

func (h *AuthHandler) VerifyToken(c *gin.Context) {
	token, err := middleware.BearerToken(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusForbidden, "Token is invalid or expired")
		return
	}

	subject, err := h.service.VerifyToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, domainUser.ErrInvalidToken) {
			utils.ErrorResponse(c, http.StatusForbidden, "Token is invalid or expired")
			return
		}
		respondWithError(c, err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, &user.VerifyTokenResponse{
		Message: user.TokenValidMessage,
		User:    subject,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	token, err := middleware.BearerToken(c)
	if err != nil {
		respondWithError(c, domainUser.ErrInvalidToken)
		return
	}

	u, err := h.service.CurrentUser(c.Request.Context(), token)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, user.ToUserResponse(u))
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req user.ForgotPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	resp, err := h.service.ForgotPassword(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, resp)
}

func (h *AuthHandler) VerifyResetCode(c *gin.Context) {
	var req user.VerifyResetCodeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	resp, err := h.service.VerifyResetCode(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, resp)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req user.ResetPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	resp, err := h.service.ResetPassword(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, resp)
}
