package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"repurpose/backend/internal/service"
)

type ExportHandler struct {
	service service.ExportService
}

type exportRequest struct {
	Format string `json:"format"`
	Title  string `json:"title"`
	HTML   string `json:"html"`
}

func NewExportHandler(service service.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

func (h *ExportHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/export", h.Export)
}

// Export renders edited output as a downloadable file.
// @Summary Export generated content
// @Description Convert edited HTML into a standalone HTML, Markdown or plain-text download.
// @Tags export
// @Accept json
// @Produce text/html
// @Produce text/markdown
// @Produce text/plain
// @Param request body exportRequest true "Export request"
// @Success 200 {file} file
// @Failure 400 {object} errorResponse
// @Router /export [post]
func (h *ExportHandler) Export(c echo.Context) error {
	var req exportRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}

	file, err := h.service.Export(service.ExportFormat(req.Format), req.Title, req.HTML)
	if err != nil {
		return writeServiceError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Blob(http.StatusOK, file.ContentType, file.Content)
}
