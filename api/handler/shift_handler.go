package handler

import (
	"net/http"
	"strconv"

	"luwakpos/api/middleware"
	"luwakpos/internal/dto"
	"luwakpos/internal/service"

	"github.com/labstack/echo/v4"
)

type ShiftHandler struct {
	Service *service.ShiftService
}

func NewShiftHandler(svc *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{Service: svc}
}

func (h *ShiftHandler) Open(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "need login")
	}
	shift, err := h.Service.Open(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.Success(shift))
}

func (h *ShiftHandler) Close(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid shift id")
	}
	shift, err := h.Service.Close(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.Success(shift))
}

func (h *ShiftHandler) ListMine(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "need login")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 30
	}
	shifts, err := h.Service.ListByUser(c.Request().Context(), userID, limit)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.Success(shifts))
}
