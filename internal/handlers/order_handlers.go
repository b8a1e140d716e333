package handlers

import (
	"net/http"
	"time"

	"stockcast/internal/common"
	"stockcast/internal/models"
	"stockcast/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// OrderHandlers handles purchase order HTTP requests.
type OrderHandlers struct {
	orderSvc services.OrderService
}

func NewOrderHandlers(orderSvc services.OrderService) *OrderHandlers {
	return &OrderHandlers{orderSvc: orderSvc}
}

// CreateOrderRequest is the order creation payload. Status is not accepted
// here; new orders always start Pending.
type CreateOrderRequest struct {
	ProductID       uuid.UUID  `json:"product_id"`
	OrderDate       *time.Time `json:"order_date"`
	Quantity        int        `json:"quantity"`
	TotalPrice      float64    `json:"total_price"`
	ShippingAddress string     `json:"shipping_address"`
	PaymentMethod   string     `json:"payment_method"`
	InvoiceNumber   *string    `json:"invoice_number"`
	Discount        *float64   `json:"discount"`
	Tax             *float64   `json:"tax"`
	ShippingCost    *float64   `json:"shipping_cost"`
}

func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.ProductID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	order := &models.Order{
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		TotalPrice:      req.TotalPrice,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		InvoiceNumber:   req.InvoiceNumber,
		Discount:        req.Discount,
		Tax:             req.Tax,
		ShippingCost:    req.ShippingCost,
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	}

	if err := h.orderSvc.Create(ctx, companyID, order); err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

// ListOrdersRequest represents query parameters for listing orders.
type ListOrdersRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *OrderHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	var req ListOrdersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 50
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	orders, err := h.orderSvc.List(ctx, companyID, req.Limit, req.Offset)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"limit":  req.Limit,
		"offset": req.Offset,
	})
}

func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	orderID, err := common.ValidateUUID(c.Param("id"), "order ID")
	if err != nil {
		return sendError(c, err)
	}

	order, err := h.orderSvc.GetByID(ctx, companyID, orderID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateOrderStatusRequest carries the target status for an order.
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

func (h *OrderHandlers) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	orderID, err := common.ValidateUUID(c.Param("id"), "order ID")
	if err != nil {
		return sendError(c, err)
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	order, err := h.orderSvc.UpdateStatus(ctx, companyID, orderID, req.Status)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}
