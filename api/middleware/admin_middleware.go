package middleware

import (
	"net/http"

	"luwakpos/internal/dto"

	"github.com/labstack/echo/v4"
)

// RequireAdmin gates routes on the admin claim derived from the schema role.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdminFromContext(c) {
			return c.JSON(http.StatusForbidden, dto.Error("forbidden"))
		}
		return next(c)
	}
}
