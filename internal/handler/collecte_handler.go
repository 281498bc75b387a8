package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"consigne/internal/errors"
	"consigne/internal/middleware"
	"consigne/internal/model"
	"consigne/internal/repository"
	"consigne/internal/service"
)

// CollecteHandler exposes the collection-readiness endpoints.
type CollecteHandler struct {
	svc service.CollecteService
}

// NewCollecteHandler creates a collecte handler.
func NewCollecteHandler(svc service.CollecteService) *CollecteHandler {
	return &CollecteHandler{svc: svc}
}

// ReportStatusRequest carries a fullness report.
type ReportStatusRequest struct {
	CollecteStatus model.CollecteStatus `json:"collecte_status" validate:"required,oneof=EMPTY ALMOST_FULL FULL"`
}

// ListAwaiting godoc
// @Summary Collection points awaiting a passage (ALMOST_FULL or FULL)
// @Tags collecte
// @Produce json
// @Param name_contains query string false "Username substring"
// @Param _sort query string false "Sort column"
// @Param _direction query string false "ASC or DESC"
// @Param _start query int false "Offset"
// @Param _limit query int false "Page size"
// @Success 200 {array} model.User
// @Security BearerAuth
// @Router /passages/awaiting [get]
func (h *CollecteHandler) ListAwaiting(c echo.Context) error {
	p := parseListParams(c, "username")
	users, err := h.svc.ListAwaitingPassage(c.Request().Context(), repository.UserQuery{
		Contains: p.Contains,
		Offset:   p.Start,
		Limit:    p.Limit,
		SortBy:   p.SortBy,
		SortDesc: p.SortDesc,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

// CountAwaiting godoc
// @Summary Count collection points awaiting a passage
// @Tags collecte
// @Produce json
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /passages/awaiting/count [get]
func (h *CollecteHandler) CountAwaiting(c echo.Context) error {
	count, err := h.svc.CountAwaitingPassage(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// ReportOwnStatus godoc
// @Summary Report the fullness of the caller's collection point
// @Tags collecte
// @Accept json
// @Produce json
// @Param request body ReportStatusRequest true "New status"
// @Success 200 {object} model.User
// @Failure 422 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /me/collecte-status [put]
func (h *CollecteHandler) ReportOwnStatus(c echo.Context) error {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}

	var req ReportStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.svc.ReportStatus(c.Request().Context(), userID, req.CollecteStatus)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// ReportStatus godoc
// @Summary Report the fullness of any collection point (admin)
// @Tags collecte
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body ReportStatusRequest true "New status"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/collecte-status [put]
func (h *CollecteHandler) ReportStatus(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req ReportStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.svc.ReportStatus(c.Request().Context(), id, req.CollecteStatus)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}
