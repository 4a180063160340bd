package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainOrder "auth-service/internal/domain/order"
	domainReset "auth-service/internal/domain/reset"
	domainUser "auth-service/internal/domain/user"
	"auth-service/internal/logger"
	"auth-service/internal/middleware"
	appErrors "auth-service/pkg/errors"
	"auth-service/pkg/utils"
)

const (
	msgIncorrectCredentials = "Incorrect username or password"
	msgInvalidCredentials   = "Could not validate credentials"
	msgInvalidBody          = "Invalid request body"
)

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, domainReset.ErrInvalidToken):
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid token")
	case errors.Is(err, domainReset.ErrAlreadyUsed):
		utils.ErrorResponse(c, http.StatusBadRequest, "Token already used")
	case errors.Is(err, domainReset.ErrExpired):
		utils.ErrorResponse(c, http.StatusBadRequest, "Token expired")
	case errors.Is(err, domainReset.ErrCodeMismatch):
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid code")
	case errors.Is(err, domainUser.ErrDuplicateUsername):
		utils.ErrorResponse(c, http.StatusBadRequest, "Username already registered")
	case errors.Is(err, domainUser.ErrDuplicateEmail):
		utils.ErrorResponse(c, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, domainUser.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		utils.ErrorResponse(c, http.StatusUnauthorized, msgIncorrectCredentials)
	case errors.Is(err, domainUser.ErrInvalidToken):
		c.Header("WWW-Authenticate", "Bearer")
		utils.ErrorResponse(c, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, domainUser.ErrUserNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "User not found")
	case errors.Is(err, domainOrder.ErrOrderNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Order not found")
	case errors.Is(err, domainOrder.ErrCustomerNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Customer not found")
	case errors.Is(err, domainOrder.ErrDuplicateCustomerCode):
		utils.ErrorResponse(c, http.StatusConflict, "Customer code already exists")
	case errors.Is(err, domainOrder.ErrCustomerInUse):
		utils.ErrorResponse(c, http.StatusConflict, "Customer still has orders")
	case errors.Is(err, domainOrder.ErrInvalidStatus):
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid order status")
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Code == appErrors.CodeValidation {
				utils.ErrorResponse(c, http.StatusBadRequest, utils.ValidationMessage(appErr.Err))
				return
			}
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		logger.Error("Internal server error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
