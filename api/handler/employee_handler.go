package handler

import (
	"net/http"
	"strconv"

	"luwakpos/internal/dto"
	"luwakpos/internal/entity"
	"luwakpos/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type EmployeeHandler struct {
	Service  *service.EmployeeService
	Validate *validator.Validate
}

func NewEmployeeHandler(svc *service.EmployeeService, validate *validator.Validate) *EmployeeHandler {
	return &EmployeeHandler{Service: svc, Validate: validate}
}

func (h *EmployeeHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 100
	}
	employees, err := h.Service.List(c.Request().Context(), limit)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.Success(employees))
}

func (h *EmployeeHandler) Create(c echo.Context) error {
	var req dto.CreateEmployeeRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err.Error())
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	employee, err := h.Service.Create(c.Request().Context(), service.CreateEmployeeInput{
		Nombre:    req.Nombre,
		Apellido:  req.Apellido,
		Sexo:      req.Sexo,
		DNI:       req.DNI,
		Celular:   req.Celular,
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		Role:      entity.RoleType(req.Role),
		AvatarURL: req.AvatarURL,
		Estado:    req.Estado,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.Success(employee))
}

func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid employee id")
	}

	var req dto.UpdateEmployeeRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err.Error())
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	var role *entity.RoleType
	if req.Role != nil {
		value := entity.RoleType(*req.Role)
		role = &value
	}

	employee, err := h.Service.Update(c.Request().Context(), id, service.UpdateEmployeeInput{
		Nombre:    req.Nombre,
		Apellido:  req.Apellido,
		Sexo:      req.Sexo,
		Celular:   req.Celular,
		AvatarURL: req.AvatarURL,
		Estado:    req.Estado,
		Role:      role,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.Success(employee))
}

func (h *EmployeeHandler) Deactivate(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid employee id")
	}
	if err := h.Service.Deactivate(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.Success(true))
}
