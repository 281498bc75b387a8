package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"consigne/internal/errors"
	"consigne/internal/repository"
	"consigne/internal/service"
)

// MaterialHandler bundles the material CRUD endpoints. Create and update
// accept multipart forms because of the image upload.
type MaterialHandler struct {
	svc service.MaterialService
}

// NewMaterialHandler creates a material handler.
func NewMaterialHandler(svc service.MaterialService) *MaterialHandler {
	return &MaterialHandler{svc: svc}
}

// ListMaterials godoc
// @Summary List materials filtered on name
// @Tags materials
// @Produce json
// @Param name_contains query string false "Name substring"
// @Success 200 {array} model.Material
// @Security BearerAuth
// @Router /materials [get]
func (h *MaterialHandler) ListMaterials(c echo.Context) error {
	p := parseListParams(c, "name")
	materials, err := h.svc.SearchMaterials(c.Request().Context(), repository.MaterialQuery{
		Contains: p.Contains,
		Offset:   p.Start,
		Limit:    p.Limit,
		SortBy:   p.SortBy,
		SortDesc: p.SortDesc,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, materials)
}

// ExportMaterials godoc
// @Summary List every material
// @Tags materials
// @Produce json
// @Success 200 {array} model.Material
// @Security BearerAuth
// @Router /materials/export [get]
func (h *MaterialHandler) ExportMaterials(c echo.Context) error {
	materials, err := h.svc.ExportMaterials(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, materials)
}

// CountMaterials godoc
// @Summary Count materials
// @Tags materials
// @Produce json
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /materials/count [get]
func (h *MaterialHandler) CountMaterials(c echo.Context) error {
	count, err := h.svc.CountMaterials(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// GetMaterial godoc
// @Summary Get material by id
// @Tags materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} model.Material
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /materials/{id} [get]
func (h *MaterialHandler) GetMaterial(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	material, err := h.svc.GetMaterial(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, material)
}

// CreateMaterial godoc
// @Summary Create a material (multipart, optional img_material file)
// @Tags materials
// @Accept mpfd
// @Produce json
// @Param name formData string true "Name"
// @Param description formData string false "Description"
// @Param img_material formData file false "Image"
// @Success 201 {object} model.Material
// @Security BearerAuth
// @Router /materials [post]
func (h *MaterialHandler) CreateMaterial(c echo.Context) error {
	name := c.FormValue("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	description := c.FormValue("description")

	// Image is optional; ignore the missing-file error.
	image, _ := c.FormFile("img_material")

	material, err := h.svc.CreateMaterial(c.Request().Context(), name, description, image)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, material)
}

// UpdateMaterial godoc
// @Summary Update a material (multipart, optional img_material file)
// @Tags materials
// @Accept mpfd
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} model.Material
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /materials/{id} [put]
func (h *MaterialHandler) UpdateMaterial(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var name, description *string
	if v := c.FormValue("name"); v != "" {
		name = &v
	}
	if v := c.FormValue("description"); v != "" {
		description = &v
	}
	image, _ := c.FormFile("img_material")

	material, err := h.svc.UpdateMaterial(c.Request().Context(), id, name, description, image)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, material)
}

// DeleteMaterial godoc
// @Summary Delete a material and its image
// @Tags materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /materials/{id} [delete]
func (h *MaterialHandler) DeleteMaterial(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	affected, err := h.svc.DeleteMaterial(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}

// ServeImage godoc
// @Summary Serve a stored material image
// @Tags materials
// @Produce octet-stream
// @Param name path string true "File name"
// @Success 200 {file} binary
// @Failure 404 {object} errors.ErrorResponse
// @Router /materials/file/{name} [get]
func (h *MaterialHandler) ServeImage(c echo.Context) error {
	path, err := h.svc.ImagePath(c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "file not found")
	}
	return c.File(path)
}
