package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"consigne/internal/errors"
	"consigne/internal/service"
)

// BottleHandler bundles bottle CRUD endpoints.
type BottleHandler struct {
	svc service.BottleService
}

// NewBottleHandler creates a bottle handler.
func NewBottleHandler(svc service.BottleService) *BottleHandler {
	return &BottleHandler{svc: svc}
}

// CreateBottleRequest creates a container format.
type CreateBottleRequest struct {
	Name       string          `json:"name" validate:"required"`
	CapacityCl int             `json:"capacity_cl" validate:"required,gt=0"`
	Deposit    decimal.Decimal `json:"deposit"`
	MaterialID uuid.UUID       `json:"material_id" validate:"required"`
}

// UpdateBottleRequest is a partial update.
type UpdateBottleRequest struct {
	Name       *string          `json:"name"`
	CapacityCl *int             `json:"capacity_cl" validate:"omitempty,gt=0"`
	Deposit    *decimal.Decimal `json:"deposit"`
}

// ListBottles godoc
// @Summary List bottles
// @Tags bottles
// @Produce json
// @Param _start query int false "Offset"
// @Param _limit query int false "Page size"
// @Success 200 {array} model.Bottle
// @Security BearerAuth
// @Router /bottles [get]
func (h *BottleHandler) ListBottles(c echo.Context) error {
	p := parseListParams(c, "name")
	bottles, err := h.svc.ListBottles(c.Request().Context(), p.Start, p.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, bottles)
}

// CountBottles godoc
// @Summary Count bottles
// @Tags bottles
// @Produce json
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /bottles/count [get]
func (h *BottleHandler) CountBottles(c echo.Context) error {
	count, err := h.svc.CountBottles(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// GetBottle godoc
// @Summary Get bottle by id
// @Tags bottles
// @Produce json
// @Param id path string true "Bottle ID"
// @Success 200 {object} model.Bottle
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /bottles/{id} [get]
func (h *BottleHandler) GetBottle(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	bottle, err := h.svc.GetBottle(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, bottle)
}

// CreateBottle godoc
// @Summary Create a bottle
// @Tags bottles
// @Accept json
// @Produce json
// @Param request body CreateBottleRequest true "Bottle payload"
// @Success 201 {object} model.Bottle
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /bottles [post]
func (h *BottleHandler) CreateBottle(c echo.Context) error {
	var req CreateBottleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bottle, err := h.svc.CreateBottle(c.Request().Context(), req.Name, req.CapacityCl, req.Deposit, req.MaterialID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, bottle)
}

// UpdateBottle godoc
// @Summary Partially update a bottle
// @Tags bottles
// @Accept json
// @Produce json
// @Param id path string true "Bottle ID"
// @Param request body UpdateBottleRequest true "Fields to change"
// @Success 200 {object} model.Bottle
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /bottles/{id} [put]
func (h *BottleHandler) UpdateBottle(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateBottleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bottle, err := h.svc.UpdateBottle(c.Request().Context(), id, req.Name, req.CapacityCl, req.Deposit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, bottle)
}

// DeleteBottle godoc
// @Summary Delete a bottle
// @Tags bottles
// @Produce json
// @Param id path string true "Bottle ID"
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /bottles/{id} [delete]
func (h *BottleHandler) DeleteBottle(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	affected, err := h.svc.DeleteBottle(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}
