package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"repurpose/backend/internal/model"
	"repurpose/backend/internal/service"
)

type ConversionHandler struct {
	service service.ConversionService
}

type conversionListResponse struct {
	Conversions []model.Conversion `json:"conversions"`
}

func NewConversionHandler(service service.ConversionService) *ConversionHandler {
	return &ConversionHandler{service: service}
}

func (h *ConversionHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/conversions", h.List)
	g.GET("/conversions/:id", h.Get)
}

// List returns recent conversions.
// @Summary List conversions
// @Description List the most recent persisted conversions, newest first.
// @Tags conversions
// @Produce json
// @Param limit query int false "Number of conversions (1-100)" default(20)
// @Success 200 {object} conversionListResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse "Persistence is not enabled"
// @Router /conversions [get]
func (h *ConversionHandler) List(c echo.Context) error {
	limit, ok := parseLimitQuery(c, "limit", service.DefaultHistoryLimit, service.MaxHistoryLimit)
	if !ok {
		return Error(c, http.StatusBadRequest, "limit must be between 1 and 100")
	}

	items, err := h.service.List(c.Request().Context(), limit)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, conversionListResponse{Conversions: items})
}

// Get returns one conversion.
// @Summary Get a conversion
// @Description Get a persisted conversion by id.
// @Tags conversions
// @Produce json
// @Param id path string true "Conversion ID"
// @Success 200 {object} model.Conversion
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /conversions/{id} [get]
func (h *ConversionHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid id")
	}

	conversion, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, conversion)
}
