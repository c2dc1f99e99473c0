package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"repurpose/backend/internal/logger"
	"repurpose/backend/internal/service"
	"repurpose/backend/internal/service/article"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeServiceError(c echo.Context, err error) error {
	var (
		validationErr *service.ValidationError
		fetchErr      *article.FetchError
		modelErr      *service.ModelError
	)
	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: validationErr.Error(), Details: validationErr.Details})
	case errors.Is(err, service.ErrPersistenceDisabled):
		return c.JSON(http.StatusNotFound, errorResponse{Error: service.ErrPersistenceDisabled.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
	case errors.As(err, &fetchErr):
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: fetchErr.Error()})
	case errors.Is(err, article.ErrExtraction):
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: article.ErrExtraction.Error()})
	case errors.Is(err, service.ErrConfiguration):
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: service.ErrConfiguration.Error()})
	case errors.As(err, &modelErr):
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: fmt.Sprintf("failed to generate %s content; please try again", modelErr.OutputType),
		})
	default:
		logger.Error("unhandled service error", "module", "handler", "action", "respond", "resource", c.Path(), "result", "failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// Error returns a JSON error response with the given status and message
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}
