package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "repurpose/backend/docs"
	"repurpose/backend/internal/handler"
)

// MaxBodySize caps request bodies; pasted articles and exported HTML stay well below it.
const MaxBodySize = "4M"

func NewRouter(
	convertHandler *handler.ConvertHandler,
	exportHandler *handler.ExportHandler,
	conversionHandler *handler.ConversionHandler,
	healthHandler *handler.HealthHandler,
	staticDir string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLoggerMiddleware())
	e.Use(middleware.BodyLimit(MaxBodySize))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	convertHandler.RegisterRoutes(api)
	exportHandler.RegisterRoutes(api)
	conversionHandler.RegisterRoutes(api)
	healthHandler.RegisterRoutes(api)

	registerStatic(e, staticDir)

	return e
}
