package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"luwakpos/api/handler"
	apiMiddleware "luwakpos/api/middleware"
	"luwakpos/api/routes"
	"luwakpos/config"
	"luwakpos/internal/repository"
	"luwakpos/internal/service"
	"luwakpos/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	db := config.ConnectionDb()
	validate := validator.New()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		logger.Fatal("JWT_SECRET is required")
	}
	tokenHashKey := []byte(os.Getenv("TOKEN_HASH_KEY"))
	if len(tokenHashKey) == 0 {
		logger.Fatal("TOKEN_HASH_KEY is required")
	}

	adminRole := os.Getenv("ADMIN_ROLE")
	if adminRole == "" {
		adminRole = "administrador"
	}
	standardRole := os.Getenv("STANDARD_ROLE")
	if standardRole == "" {
		standardRole = "empleado"
	}

	tokenManager := utils.TokenManager{
		Secret:         jwtSecret,
		Issuer:         os.Getenv("JWT_ISSUER"),
		AccessTokenTTL: 15 * time.Minute,
		AdminRole:      adminRole,
	}
	digester := utils.TokenDigester{Key: tokenHashKey}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	passcodeRepo := repository.NewPasscodeRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	securityRepo := repository.NewSecurityLogRepository(db)

	emailFrom := os.Getenv("EMAIL_FROM")
	if emailFrom == "" {
		emailFrom = "Luwak POS <no-reply@luwak.local>"
	}
	emailSender := service.NewResendEmailSender(os.Getenv("RESEND_API_KEY"), emailFrom)

	authService := service.NewAuthService(
		userRepo,
		sessionRepo,
		refreshRepo,
		passcodeRepo,
		employeeRepo,
		securityRepo,
		emailSender,
		service.BcryptHasher{},
		digester,
		service.JWTAccessIssuer{Manager: &tokenManager},
		service.RealClock{},
		logger,
		service.AuthConfig{
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			PasscodeTTL:     3 * time.Minute,
			AdminRole:       adminRole,
			StandardRole:    standardRole,
		},
	)
	employeeService := service.NewEmployeeService(employeeRepo, userRepo, service.BcryptHasher{}, adminRole, standardRole)
	shiftService := service.NewShiftService(shiftRepo, service.RealClock{})
	dashboardService := service.NewDashboardService(orderRepo, service.RealClock{})

	authHandler := handler.NewAuthHandler(authService, &tokenManager, validate)
	authHandler.Cookies = handler.CookieConfig{
		Domain: os.Getenv("COOKIE_DOMAIN"),
		Secure: os.Getenv("COOKIE_SECURE") != "false",
	}
	employeeHandler := handler.NewEmployeeHandler(employeeService, validate)
	shiftHandler := handler.NewShiftHandler(shiftService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		app.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
			AllowOrigins:     strings.Split(origins, ","),
			AllowCredentials: true,
		}))
	}
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{Tokens: &tokenManager}
	router := routes.NewRouter(app, authHandler, employeeHandler, shiftHandler, dashboardHandler, authMiddleware)
	router.RegisterRoutes()

	// Expired refresh tokens and passcodes are dead weight; sweep them in
	// the background.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := refreshRepo.DeleteExpired(ctx); err != nil {
				logger.WithError(err).Warn("sweeping expired refresh tokens")
			}
			if err := passcodeRepo.DeleteExpired(ctx); err != nil {
				logger.WithError(err).Warn("sweeping expired passcodes")
			}
			cancel()
		}
	}()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", addr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
