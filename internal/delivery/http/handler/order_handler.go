package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"auth-service/internal/middleware"
	"auth-service/internal/usecase/order"
	"auth-service/pkg/utils"
)

type OrderService interface {
	CreateCustomer(ctx context.Context, req *order.CreateCustomerRequest) (*order.CustomerResponse, error)
	GetCustomer(ctx context.Context, customerID uuid.UUID) (*order.CustomerResponse, error)
	CreateOrder(ctx context.Context, userID uuid.UUID, req *order.CreateOrderRequest) (*order.OrderResponse, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*order.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, userID, orderID uuid.UUID, req *order.UpdateStatusRequest) (*order.OrderResponse, error)
}

type OrderHandler struct {
	service OrderService
}

func NewOrderHandler(service OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes expects a group already guarded by AuthMiddleware.
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	customers := router.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("/:customer_id", h.GetCustomer)
	}

	orders := router.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.PATCH("/:order_id/status", h.UpdateOrderStatus)
	}
}

func (h *OrderHandler) CreateCustomer(c *gin.Context) {
	var req order.CreateCustomerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	req.Code = utils.SanitizeString(req.Code)
	req.Name = utils.SanitizeString(req.Name)
	if req.ContactNumber != nil {
		sanitized := utils.SanitizeString(*req.ContactNumber)
		req.ContactNumber = &sanitized
	}
	if req.Address != nil {
		sanitized := utils.SanitizeText(*req.Address)
		req.Address = &sanitized
	}

	resp, err := h.service.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, resp)
}

func (h *OrderHandler) GetCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	resp, err := h.service.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, resp)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	req.OrderType = utils.SanitizeString(req.OrderType)
	req.OrderPlace = utils.SanitizeString(req.OrderPlace)

	resp, err := h.service.CreateOrder(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, resp)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	resp, err := h.service.ListOrders(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, resp)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req order.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	resp, err := h.service.UpdateOrderStatus(c.Request.Context(), userID, orderID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, resp)
}
