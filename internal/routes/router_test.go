package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"auth-service/internal/config"
	"auth-service/internal/delivery/http/handler"
	"auth-service/internal/infrastructure/database/memory"
	"auth-service/internal/usecase/order"
)

type healthFunc func(ctx context.Context) error

func (f healthFunc) Health(ctx context.Context) error { return f(ctx) }

func newRouter(health HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()

	return SetupRoutes(&config.Config{}, health, Services{
		Auth:          handler.NewAuthHandler(nil),
		Orders:        handler.NewOrderHandler(order.NewService(store.Orders(), store.Customers())),
		Authenticator: nil,
	})
}

func TestSetupRoutes_Health(t *testing.T) {
	tests := []struct {
		name       string
		health     HealthChecker
		wantStatus int
	}{
		{"healthy store", memory.NewStore(), http.StatusOK},
		{"database down", healthFunc(func(context.Context) error { return errors.New("down") }), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newRouter(tt.health).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestSetupRoutes_Metrics(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(memory.NewStore()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestSetupRoutes_OrdersRequireBearer(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(memory.NewStore()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
