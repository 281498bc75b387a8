package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"consigne/internal/errors"
	"consigne/internal/model"
	"consigne/internal/repository"
	"consigne/internal/service"
)

// UserHandler bundles the admin user CRUD endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UpdateUserRequest is a partial update; absent fields stay untouched.
type UpdateUserRequest struct {
	Username          *string               `json:"username"`
	Email             *string               `json:"email" validate:"omitempty,email"`
	Password          *string               `json:"password" validate:"omitempty,min=6"`
	Company           *string               `json:"company"`
	Tel               *string               `json:"tel"`
	Role              *model.Role           `json:"role" validate:"omitempty,oneof=ADMIN USER"`
	Status            *model.UserStatus     `json:"status" validate:"omitempty,oneof=PENDING ACTIVE"`
	Reseller          *bool                 `json:"reseller"`
	Producer          *bool                 `json:"producer"`
	HeavyTruck        *bool                 `json:"heavy_truck"`
	Stacker           *bool                 `json:"stacker"`
	Forklift          *bool                 `json:"forklift"`
	PalletTruck       *bool                 `json:"pallet_truck"`
	CollectePoint     *bool                 `json:"collecte_point"`
	CollecteStatus    *model.CollecteStatus `json:"collecte_status" validate:"omitempty,oneof=EMPTY ALMOST_FULL FULL"`
	DeliverySchedules *string               `json:"delivery_schedules"`
	DeliveryData      *string               `json:"delivery_data"`
	InternalData      *string               `json:"internal_data"`
	Address           *AddressRequest       `json:"address"`
	DeliveryAddress   *AddressRequest       `json:"delivery_address"`
}

func parseUserID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// ListUsers godoc
// @Summary List users filtered on username
// @Tags users
// @Produce json
// @Param name_contains query string false "Username substring"
// @Param _sort query string false "Sort column"
// @Param _direction query string false "ASC or DESC"
// @Param _start query int false "Offset"
// @Param _limit query int false "Page size"
// @Success 200 {array} model.User
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	p := parseListParams(c, "username")
	users, err := h.svc.SearchUsers(c.Request().Context(), repository.UserQuery{
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

// ExportUsers godoc
// @Summary List every USER-role account
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Security BearerAuth
// @Router /users/export [get]
func (h *UserHandler) ExportUsers(c echo.Context) error {
	users, err := h.svc.ExportUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

// CountUsers godoc
// @Summary Count users
// @Tags users
// @Produce json
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /users/count [get]
func (h *UserHandler) CountUsers(c echo.Context) error {
	count, err := h.svc.CountUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// CreateUser godoc
// @Summary Create a user (admin; account is created PENDING)
// @Tags users
// @Accept json
// @Produce json
// @Param request body SignupRequest true "User payload"
// @Success 201 {object} model.User
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.svc.CreateUser(c.Request().Context(), service.CreateUserInput{
		Username:          req.Username,
		Email:             req.Email,
		Password:          req.Password,
		Company:           req.Company,
		Tel:               req.Tel,
		Role:              req.Role,
		Reseller:          req.Reseller,
		Producer:          req.Producer,
		HeavyTruck:        req.HeavyTruck,
		Stacker:           req.Stacker,
		Forklift:          req.Forklift,
		PalletTruck:       req.PalletTruck,
		CollectePoint:     req.CollectePoint,
		DeliverySchedules: req.DeliverySchedules,
		DeliveryData:      req.DeliveryData,
		InternalData:      req.InternalData,
		Address:           addressInput(req.Address),
		DeliveryAddress:   addressInput(req.DeliveryAddress),
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, user)
}

// UpdateUser godoc
// @Summary Partially update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), id, service.UpdateUserInput{
		Username:          req.Username,
		Email:             req.Email,
		Password:          req.Password,
		Company:           req.Company,
		Tel:               req.Tel,
		Role:              req.Role,
		Status:            req.Status,
		Reseller:          req.Reseller,
		Producer:          req.Producer,
		HeavyTruck:        req.HeavyTruck,
		Stacker:           req.Stacker,
		Forklift:          req.Forklift,
		PalletTruck:       req.PalletTruck,
		CollectePoint:     req.CollectePoint,
		CollecteStatus:    req.CollecteStatus,
		DeliverySchedules: req.DeliverySchedules,
		DeliveryData:      req.DeliveryData,
		InternalData:      req.InternalData,
		Address:           addressInput(req.Address),
		DeliveryAddress:   addressInput(req.DeliveryAddress),
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user and its addresses
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	affected, err := h.svc.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}
