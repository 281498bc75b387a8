package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"consigne/internal/errors"
	"consigne/internal/middleware"
	"consigne/internal/model"
	"consigne/internal/service"
)

// OrderHandler bundles order endpoints.
type OrderHandler struct {
	svc service.OrderService
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// CreateOrderRequest places an order for the authenticated user.
type CreateOrderRequest struct {
	BottleID uuid.UUID `json:"bottle_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
}

// UpdateOrderStatusRequest changes the order status.
type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" validate:"required,oneof=PENDING CONFIRMED DELIVERED CANCELLED"`
}

// ListOrders godoc
// @Summary List all orders (admin)
// @Tags orders
// @Produce json
// @Param _start query int false "Offset"
// @Param _limit query int false "Page size"
// @Success 200 {array} model.Order
// @Security BearerAuth
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c echo.Context) error {
	p := parseListParams(c, "created_at")
	orders, err := h.svc.ListOrders(c.Request().Context(), p.Start, p.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, orders)
}

// CountOrders godoc
// @Summary Count orders
// @Tags orders
// @Produce json
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /orders/count [get]
func (h *OrderHandler) CountOrders(c echo.Context) error {
	count, err := h.svc.CountOrders(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// ListOwnOrders godoc
// @Summary List the caller's orders
// @Tags orders
// @Produce json
// @Success 200 {array} model.Order
// @Security BearerAuth
// @Router /me/orders [get]
func (h *OrderHandler) ListOwnOrders(c echo.Context) error {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}

	orders, err := h.svc.ListUserOrders(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder godoc
// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} model.Order
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	order, err := h.svc.GetOrder(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, order)
}

// CreateOrder godoc
// @Summary Place an order for the authenticated user
// @Tags orders
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest true "Order payload"
// @Success 201 {object} model.Order
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.svc.CreateOrder(c.Request().Context(), userID, req.BottleID, req.Quantity)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, order)
}

// UpdateOrderStatus godoc
// @Summary Change an order's status (admin)
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body UpdateOrderStatusRequest true "New status"
// @Success 200 {object} model.Order
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/status [put]
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.svc.UpdateOrderStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, order)
}

// DeleteOrder godoc
// @Summary Delete an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	affected, err := h.svc.DeleteOrder(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}
