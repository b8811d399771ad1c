package routes

import (
	"time"

	"luwakpos/api/handler"
	"luwakpos/api/middleware"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Employees      *handler.EmployeeHandler
	Shifts         *handler.ShiftHandler
	Dashboard      *handler.DashboardHandler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	employeeHandler *handler.EmployeeHandler,
	shiftHandler *handler.ShiftHandler,
	dashboardHandler *handler.DashboardHandler,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		Employees:      employeeHandler,
		Shifts:         shiftHandler,
		Dashboard:      dashboardHandler,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/api/auth/login", r.Auth.Login, r.LoginRate.Middleware())
	e.POST("/api/auth/refresh", r.Auth.Refresh, r.AuthRate.Middleware())
	e.POST("/api/auth/logout", r.Auth.Logout)
	e.POST("/api/auth/register", r.Auth.Register, r.AuthRate.Middleware())
	e.POST("/api/auth/reset-password", r.Auth.ResetPassword, r.AuthRate.Middleware())
	e.POST("/api/auth/send-verification", r.Auth.SendVerification, r.LoginRate.Middleware())
	e.GET("/api/auth/user", r.Auth.CurrentUser, r.AuthMiddleware.RequireAuth)

	e.GET("/api/employees", r.Employees.List, r.AuthMiddleware.RequireAuth)
	e.POST("/api/employees", r.Employees.Create, r.AuthMiddleware.RequireAuth, middleware.RequireAdmin)
	e.PATCH("/api/employees/:id", r.Employees.Update, r.AuthMiddleware.RequireAuth, middleware.RequireAdmin)
	e.DELETE("/api/employees/:id", r.Employees.Deactivate, r.AuthMiddleware.RequireAuth, middleware.RequireAdmin)

	e.POST("/api/shifts", r.Shifts.Open, r.AuthMiddleware.RequireAuth)
	e.PATCH("/api/shifts/:id/close", r.Shifts.Close, r.AuthMiddleware.RequireAuth)
	e.GET("/api/shifts", r.Shifts.ListMine, r.AuthMiddleware.RequireAuth)

	e.GET("/api/dashboard", r.Dashboard.Summary, r.AuthMiddleware.RequireAuth, middleware.RequireAdmin)
}
