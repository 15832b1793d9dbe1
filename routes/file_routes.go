package routes

import (
	"github.com/labstack/echo/v4"
)

// RegisterFileRoutes sets up static file serving for uploaded media
func RegisterFileRoutes(e *echo.Echo) {
	e.Static("/uploads", "uploads")
}
