package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"consigne/internal/errors"
	"consigne/internal/service"
)

// PassageHandler bundles passage scheduling endpoints.
type PassageHandler struct {
	svc service.PassageService
}

// NewPassageHandler creates a passage handler.
func NewPassageHandler(svc service.PassageService) *PassageHandler {
	return &PassageHandler{svc: svc}
}

// SchedulePassageRequest books a pickup visit.
type SchedulePassageRequest struct {
	UserID      uuid.UUID `json:"user_id" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Notes       string    `json:"notes"`
}

// ListPassages godoc
// @Summary List passages (pending=true filters out completed ones)
// @Tags passages
// @Produce json
// @Param pending query bool false "Only pending passages"
// @Param _start query int false "Offset"
// @Param _limit query int false "Page size"
// @Success 200 {array} model.Passage
// @Security BearerAuth
// @Router /passages [get]
func (h *PassageHandler) ListPassages(c echo.Context) error {
	p := parseListParams(c, "scheduled_at")
	pendingOnly, _ := strconv.ParseBool(c.QueryParam("pending"))
	passages, err := h.svc.ListPassages(c.Request().Context(), p.Start, p.Limit, pendingOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, passages)
}

// CountPassages godoc
// @Summary Count passages
// @Tags passages
// @Produce json
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /passages/count [get]
func (h *PassageHandler) CountPassages(c echo.Context) error {
	count, err := h.svc.CountPassages(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// GetPassage godoc
// @Summary Get passage by id
// @Tags passages
// @Produce json
// @Param id path string true "Passage ID"
// @Success 200 {object} model.Passage
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /passages/{id} [get]
func (h *PassageHandler) GetPassage(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	passage, err := h.svc.GetPassage(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, passage)
}

// SchedulePassage godoc
// @Summary Schedule a pickup at a collection point
// @Tags passages
// @Accept json
// @Produce json
// @Param request body SchedulePassageRequest true "Passage data"
// @Success 201 {object} model.Passage
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /passages [post]
func (h *PassageHandler) SchedulePassage(c echo.Context) error {
	var req SchedulePassageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	passage, err := h.svc.SchedulePassage(c.Request().Context(), req.UserID, req.ScheduledAt, req.Notes)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, passage)
}

// CompletePassage godoc
// @Summary Complete a passage; resets the collection point to EMPTY
// @Tags passages
// @Produce json
// @Param id path string true "Passage ID"
// @Success 200 {object} model.Passage
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /passages/{id}/complete [post]
func (h *PassageHandler) CompletePassage(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	passage, err := h.svc.CompletePassage(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, passage)
}

// DeletePassage godoc
// @Summary Delete a passage
// @Tags passages
// @Produce json
// @Param id path string true "Passage ID"
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /passages/{id} [delete]
func (h *PassageHandler) DeletePassage(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	affected, err := h.svc.DeletePassage(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}
