package http

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"repurpose/backend/internal/logger"
)

// registerStatic serves the built UI from dir. Unknown paths fall back to
// index.html so client-side routes survive a reload.
func registerStatic(e *echo.Echo, dir string) {
	if dir == "" {
		return
	}
	indexPath := filepath.Join(dir, "index.html")
	if info, err := os.Stat(indexPath); err != nil || info.IsDir() {
		logger.Warn("static index missing", "module", "http", "action", "serve", "resource", "static", "result", "skipped", "path", indexPath)
		return
	}
	logger.Info("static assets enabled", "module", "http", "action", "serve", "resource", "static", "result", "ok", "dir", dir)

	e.GET("/*", func(c echo.Context) error {
		requestPath := c.Request().URL.Path
		if isReservedPath(requestPath) {
			return echo.ErrNotFound
		}

		rel := strings.TrimPrefix(path.Clean("/"+requestPath), "/")
		if rel != "" {
			candidate := filepath.Join(dir, filepath.FromSlash(rel))
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return c.File(candidate)
			}
		}
		return c.File(indexPath)
	})
}

func isReservedPath(p string) bool {
	for _, prefix := range []string{"/api", "/swagger"} {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}
