package main

import (
	"context"
	"log"

	"accounts/config"
	"accounts/jobs"
	"accounts/middleware"
	"accounts/routes"
	"accounts/services"
	"accounts/services/logger"
	"accounts/services/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewDefaultLogger(logger.ParseLevel(cfg.LogLevel))

	ctx := context.Background()
	router, c, err := config.InitApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer c.Stop()

	backend := services.NewBackendClient(services.BackendClientOptions{
		BaseURL: cfg.APIURL,
		Timeout: cfg.BackendTimeout,
		Logger:  appLogger.With("component", "backend"),
	})
	sessions := services.NewSessionStore(config.RedisClient, cfg.SessionTTL)
	screens := services.NewScreenStateStore(config.RedisClient, cfg.ScreenStateTTL)
	toasts := notification.NewRedisService(config.RedisClient, cfg.ScreenStateTTL)

	if err := jobs.InitCronJobs(c, backend, cfg.KeepAliveSchedule, appLogger.With("component", "cron")); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	routes.SetupRoutes(router, routes.Dependencies{
		Backend:   backend,
		Sessions:  sessions,
		Toasts:    toasts,
		Auth:      services.NewAuthService(backend, sessions, screens, appLogger),
		Employees: services.NewEmployeeDashboard(backend, screens, appLogger),
		Salary:    services.NewSalaryDashboard(backend, screens, appLogger),
		Cookie: middleware.CookieOptions{
			Name:   cfg.CookieName,
			Secure: cfg.CookieSecure,
		},
		Logger: appLogger,
	})

	appLogger.Info("Server starting on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
