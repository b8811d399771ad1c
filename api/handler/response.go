package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"luwakpos/api/middleware"
	"luwakpos/internal/dto"
	"luwakpos/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const RefreshTokenCookie = "refresh-token"

// RefreshCookiePath scopes the refresh cookie to the one endpoint allowed
// to see it.
const RefreshCookiePath = "/api/auth/refresh"

// CookieConfig carries the attributes shared by both auth cookies. They are
// cross-site capable, which requires Secure together with SameSite=None.
type CookieConfig struct {
	Domain string
	Secure bool
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, message string) error {
	return c.JSON(status, dto.Error(message))
}

// writeValidationError surfaces the first failing rule only.
func writeValidationError(c echo.Context, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return writeError(c, http.StatusBadRequest, validationErrors[0].Error())
	}
	return writeError(c, http.StatusBadRequest, err.Error())
}

func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidPasscode):
		return writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrRefreshMissing):
		return c.JSON(http.StatusUnauthorized, dto.ErrorWithCode(dto.CodeRefreshTokenMissing, "refresh token is missing"))
	case errors.Is(err, service.ErrRefreshExpired):
		return c.JSON(http.StatusUnauthorized, dto.ErrorWithCode(dto.CodeRefreshTokenExpired, "refresh token is expired or invalid"))
	case errors.Is(err, service.ErrEmailAlreadyRegistered),
		errors.Is(err, service.ErrDNIConflict),
		errors.Is(err, service.ErrUsernameConflict):
		return writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrEmployeeNotFound),
		errors.Is(err, service.ErrShiftNotFound):
		return writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrShiftActive):
		return writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmailDelivery):
		return writeError(c, http.StatusBadGateway, err.Error())
	}
	// Unexpected: nothing internal crosses the boundary.
	c.Logger().Error(err)
	return writeError(c, http.StatusInternalServerError, "internal server error")
}

func setAuthCookies(c echo.Context, cfg CookieConfig, accessToken string, accessTTL time.Duration, refreshToken string, refreshExpiry time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   int(accessTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteNoneMode,
	})
	c.SetCookie(&http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    refreshToken,
		Path:     RefreshCookiePath,
		Domain:   cfg.Domain,
		Expires:  refreshExpiry,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteNoneMode,
	})
}

func clearAuthCookies(c echo.Context, cfg CookieConfig) {
	for _, cookie := range []struct {
		name string
		path string
	}{
		{middleware.AccessTokenCookie, "/"},
		{RefreshTokenCookie, RefreshCookiePath},
	} {
		c.SetCookie(&http.Cookie{
			Name:     cookie.name,
			Value:    "",
			Path:     cookie.path,
			Domain:   cfg.Domain,
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   cfg.Secure,
			SameSite: http.SameSiteNoneMode,
		})
	}
}
