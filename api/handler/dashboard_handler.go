package handler

import (
	"net/http"

	"luwakpos/internal/dto"
	"luwakpos/internal/service"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	Service *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: svc}
}

func (h *DashboardHandler) Summary(c echo.Context) error {
	rng := service.DashboardRange(c.QueryParam("range"))
	switch rng {
	case service.RangeDay, service.RangeWeek, service.RangeMonth:
	case "":
		rng = service.RangeDay
	default:
		return writeError(c, http.StatusBadRequest, "invalid range")
	}

	summary, err := h.Service.Summary(c.Request().Context(), rng)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.Success(summary))
}
