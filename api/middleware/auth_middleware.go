package middleware

import (
	"net/http"
	"strconv"

	"luwakpos/internal/dto"
	"luwakpos/internal/utils"

	"github.com/labstack/echo/v4"
)

// AccessTokenCookie is the cookie the request gate reads. Its path is "/";
// the refresh cookie never reaches protected endpoints.
const AccessTokenCookie = "auth-token"

type AuthMiddleware struct {
	Tokens *utils.TokenManager
}

// RequireAuth verifies the access-token cookie. An expired token answers
// with TOKEN_EXPIRED so the client attempts a refresh; anything else,
// including a tampered token, answers TOKEN_MISSING and forces a re-login.
func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.Tokens == nil {
			return c.JSON(http.StatusUnauthorized, dto.ErrorWithCode(dto.CodeTokenMissing, "need login"))
		}

		claims, result := m.Tokens.Verify(readCookie(c, AccessTokenCookie))
		switch result {
		case utils.ResultExpired:
			return c.JSON(http.StatusUnauthorized, dto.ErrorWithCode(dto.CodeTokenExpired, "need login"))
		case utils.ResultValid:
		default:
			return c.JSON(http.StatusUnauthorized, dto.ErrorWithCode(dto.CodeTokenMissing, "need login"))
		}

		userID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, dto.ErrorWithCode(dto.CodeTokenMissing, "need login"))
		}

		SetAuthContext(c, userID, claims.Email, claims.Role, claims.IsAdmin)
		return next(c)
	}
}

func readCookie(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
