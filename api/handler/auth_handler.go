package handler

import (
	"net/http"
	"strconv"
	"time"

	"luwakpos/api/middleware"
	"luwakpos/internal/dto"
	"luwakpos/internal/service"
	"luwakpos/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Service  *service.AuthService
	Tokens   *utils.TokenManager
	Validate *validator.Validate
	Cookies  CookieConfig
}

func NewAuthHandler(svc *service.AuthService, tokens *utils.TokenManager, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		Service:  svc,
		Tokens:   tokens,
		Validate: validate,
		Cookies:  CookieConfig{Secure: true},
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err.Error())
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	tokens, err := h.Service.Login(c.Request().Context(), service.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	h.setTokens(c, tokens)
	return c.JSON(http.StatusOK, dto.Success(true))
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	refreshToken := readCookieValue(c, RefreshTokenCookie)

	tokens, err := h.Service.Refresh(c.Request().Context(), refreshToken)
	if err != nil {
		return writeServiceError(c, err)
	}

	h.setTokens(c, tokens)
	return c.JSON(http.StatusOK, dto.Success(true))
}

// Logout revokes the presented refresh chain and always reports success so
// the client can clear its local state regardless of server-side trouble.
func (h *AuthHandler) Logout(c echo.Context) error {
	var userID *int64
	if claims, result := h.Tokens.Verify(readCookieValue(c, middleware.AccessTokenCookie)); result == utils.ResultValid {
		if id, err := strconv.ParseInt(claims.Subject, 10, 64); err == nil {
			userID = &id
		}
	}

	ip := c.RealIP()
	h.Service.Logout(c.Request().Context(), readCookieValue(c, RefreshTokenCookie), userID, &ip)

	clearAuthCookies(c, h.Cookies)
	return c.JSON(http.StatusOK, dto.Success("Logged out successfully"))
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err.Error())
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	input := service.RegisterInput{Email: req.Email, Password: req.Password, Passcode: req.Passcode}
	if err := h.Service.Register(c.Request().Context(), input); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.Success(true))
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err.Error())
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	input := service.ResetPasswordInput{Email: req.Email, Passcode: req.Passcode, Password: req.Password}
	if err := h.Service.ResetPassword(c.Request().Context(), input); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.Success(true))
}

func (h *AuthHandler) SendVerification(c echo.Context) error {
	var req dto.SendVerificationRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err.Error())
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	kind := service.VerificationKind(req.Type)
	if err := h.Service.SendVerification(c.Request().Context(), req.Email, kind); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.Success(true))
}

func (h *AuthHandler) CurrentUser(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, dto.ErrorWithCode(dto.CodeTokenMissing, "need login"))
	}

	profile, err := h.Service.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.Success(profile))
}

func (h *AuthHandler) setTokens(c echo.Context, tokens *service.AuthTokens) {
	setAuthCookies(c, h.Cookies,
		tokens.AccessToken, time.Duration(tokens.AccessExpiresIn)*time.Second,
		tokens.RefreshToken, tokens.RefreshExpiresAt,
	)
}

func readCookieValue(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
