package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	provider    string
	model       string
	persistence bool
}

type healthResponse struct {
	Status      string `json:"status"`
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	Persistence bool   `json:"persistence"`
}

func NewHealthHandler(provider, model string, persistence bool) *HealthHandler {
	return &HealthHandler{provider: provider, model: model, persistence: persistence}
}

func (h *HealthHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/health", h.Health)
}

// Health reports the server configuration.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:      "ok",
		Provider:    h.provider,
		Model:       h.model,
		Persistence: h.persistence,
	})
}
