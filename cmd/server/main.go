package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	"crane-backend/internal/auth"
	"crane-backend/internal/cache"
	"crane-backend/internal/config"
	"crane-backend/internal/database"
	"crane-backend/internal/db"
	"crane-backend/internal/handlers"
	"crane-backend/internal/health"
	api "crane-backend/internal/http"
	"crane-backend/internal/middleware"
	"crane-backend/internal/repositories"
	"crane-backend/internal/services"
	"crane-backend/internal/ws"
	"crane-backend/migrations"
	"crane-backend/pkg/logger"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	log := logger.New()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	if err := cache.Init(cfg); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, token revocation and stats cache disabled")
	} else {
		log.Info().Msg("redis connected")
	}

	migrator := database.NewMigrator(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	jwtManager := auth.NewJWTManager(cfg)
	healthChecker := health.NewHealthChecker(pool)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	orderRepo := repositories.NewOrderRepository(pool)
	auditLogRepo := repositories.NewAuditLogRepository(pool)
	rateRepo := repositories.NewRateRepository(pool)
	driverRepo := repositories.NewDriverRepository(pool)
	importRecordRepo := repositories.NewImportRecordRepository(pool)

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	orderService := services.NewOrderService(orderRepo, rateRepo)
	totpService := services.NewTOTPService(userRepo)
	paymentService := services.NewPaymentService(cfg, orderService)
	reportService := services.NewReportService(orderRepo, rateRepo, driverRepo)
	exportService := services.NewExportService(reportService, cfg)
	importService := services.NewImportService(orderService, importRecordRepo, log)

	hub := ws.NewHub(log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditLogRepo, jwtManager)
	totpHandler := handlers.NewTOTPHandler(totpService, userService)
	userHandler := handlers.NewUserHandler(userService, auditLogRepo)
	orderHandler := handlers.NewOrderHandler(orderService, paymentService, auditLogRepo, hub)
	exportHandler := handlers.NewExportHandler(exportService)
	auditLogHandler := handlers.NewAuditLogHandler(auditLogRepo)
	rateHandler := handlers.NewRateHandler(rateRepo)
	reportHandler := handlers.NewReportHandler(reportService, exportService)
	driverHandler := handlers.NewDriverHandler(driverRepo)
	importHandler := handlers.NewImportHandler(importService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := api.NewRouter(
		authHandler,
		totpHandler,
		userHandler,
		orderHandler,
		exportHandler,
		auditLogHandler,
		rateHandler,
		reportHandler,
		driverHandler,
		importHandler,
		healthHandler,
		hub,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.NewCORS(cfg)(
			middleware.MetricsMiddleware(
				middleware.RequestLogger(log)(router))))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
