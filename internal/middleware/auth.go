package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainUser "auth-service/internal/domain/user"
	"auth-service/internal/logger"
	"auth-service/pkg/utils"
)

const (
	UserIDKey   = "userID"
	UsernameKey = "username"
)

var errMissingBearer = errors.New("missing bearer token")

// Authenticator resolves a bearer token to the account it was issued for.
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (*domainUser.User, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errMissingBearer
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errMissingBearer
	}
	return strings.TrimSpace(parts[1]), nil
}

func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := BearerToken(c)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}

		user, err := auth.CurrentUser(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainUser.ErrInvalidToken) || errors.Is(err, domainUser.ErrUserNotFound) {
				c.Header("WWW-Authenticate", "Bearer")
				utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
				c.Abort()
				return
			}

			logger.Error("Failed to authenticate request",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
			c.Abort()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UsernameKey, user.Username)

		c.Next()
	}
}

// GetUserID returns the id stored by AuthMiddleware.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
