package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/rsystemautomacao/agrodrones/internal/caching"
	"github.com/rsystemautomacao/agrodrones/internal/config"
	"github.com/rsystemautomacao/agrodrones/internal/handlers"
	"github.com/rsystemautomacao/agrodrones/internal/jobs/background"
	"github.com/rsystemautomacao/agrodrones/internal/middleware"
	"github.com/rsystemautomacao/agrodrones/internal/repositories"
	"github.com/rsystemautomacao/agrodrones/internal/services"
	"github.com/rsystemautomacao/agrodrones/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()

	pool, err := database.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	minioSvc, err := services.NewMinioService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	companyRepo := repositories.NewCompanyRepo(pool)
	clientRepo := repositories.NewClientRepo(pool)
	droneRepo := repositories.NewDroneRepo(pool)
	operatorRepo := repositories.NewOperatorRepo(pool)
	applicationRepo := repositories.NewApplicationRepo(pool)
	fileRepo := repositories.NewFileRepo(pool)

	// Services
	authSvc := services.NewAuthService(userRepo, companyRepo, cacheSvc, cfg.JWTSecret, cfg.TokenTTLSecs, cfg.RefreshTTLSecs)
	clientSvc := services.NewClientService(clientRepo, cacheSvc)
	droneSvc := services.NewDroneService(droneRepo)
	operatorSvc := services.NewOperatorService(operatorRepo)
	applicationSvc := services.NewApplicationService(applicationRepo, clientRepo, droneRepo, operatorRepo, companyRepo)
	companySvc := services.NewCompanyService(companyRepo, minioSvc)
	fileSvc := services.NewFileService(fileRepo, applicationRepo, minioSvc)
	exportSvc := services.NewExportService(applicationRepo, clientRepo, droneRepo, operatorRepo)
	reportSvc := services.NewReportService(applicationRepo, clientRepo, droneRepo, operatorRepo, companyRepo, exportSvc, minioSvc)
	dashboardSvc := services.NewDashboardService(applicationRepo, clientRepo, droneRepo, exportSvc, cacheSvc)

	// Background jobs
	scheduler := background.NewJobScheduler(dashboardSvc, companyRepo)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Job scheduler shutdown error: %v", err)
		}
	}()

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	clientHandlers := handlers.NewClientHandlers(clientSvc)
	droneHandlers := handlers.NewDroneHandlers(droneSvc)
	operatorHandlers := handlers.NewOperatorHandlers(operatorSvc)
	applicationHandlers := handlers.NewApplicationHandlers(applicationSvc)
	reportHandlers := handlers.NewReportHandlers(exportSvc, reportSvc)
	companyHandlers := handlers.NewCompanyHandlers(companySvc)
	fileHandlers := handlers.NewFileHandlers(fileSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/health/metrics", healthHandlers.GetMetrics)

	v1 := e.Group("/v1")
	v1.Use(versionMiddleware.VersionHeader("v1"))

	// Authentication routes (no JWT required for register/login)
	auth := v1.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(authSvc))

	protected.POST("/auth/logout", authHandlers.Logout)
	protected.POST("/auth/change-password", authHandlers.ChangePassword)

	// Client routes
	protected.GET("/clients", clientHandlers.ListClients)
	protected.POST("/clients", clientHandlers.CreateClient)
	protected.GET("/clients/:id", clientHandlers.GetClient)
	protected.PUT("/clients/:id", clientHandlers.UpdateClient)
	protected.DELETE("/clients/:id", clientHandlers.DeleteClient)

	// Drone routes
	protected.GET("/drones", droneHandlers.ListDrones)
	protected.POST("/drones", droneHandlers.CreateDrone)
	protected.GET("/drones/:id", droneHandlers.GetDrone)
	protected.PUT("/drones/:id", droneHandlers.UpdateDrone)
	protected.DELETE("/drones/:id", droneHandlers.DeactivateDrone)

	// Operator routes
	protected.GET("/operators", operatorHandlers.ListOperators)
	protected.POST("/operators", operatorHandlers.CreateOperator)
	protected.GET("/operators/:id", operatorHandlers.GetOperator)
	protected.PUT("/operators/:id", operatorHandlers.UpdateOperator)
	protected.DELETE("/operators/:id", operatorHandlers.DeactivateOperator)

	// Application routes
	protected.GET("/applications", applicationHandlers.ListApplications)
	protected.POST("/applications", applicationHandlers.CreateApplication)
	protected.GET("/applications/:id", applicationHandlers.GetApplication)
	protected.PUT("/applications/:id", applicationHandlers.UpdateApplication)
	protected.DELETE("/applications/:id", applicationHandlers.DeleteApplication)
	protected.PUT("/applications/:id/relatorio", applicationHandlers.UpdateRelatorioOperacional)
	protected.POST("/applications/:id/duplicate", applicationHandlers.DuplicateApplication)

	// Report and export routes
	protected.GET("/reports/export.csv", reportHandlers.ExportCSV)
	protected.GET("/reports/export.xlsx", reportHandlers.ExportXLSX)
	protected.GET("/reports/:id/pdf", reportHandlers.OperationalReportPDF)
	protected.GET("/reports/consolidated.pdf", reportHandlers.ConsolidatedReportPDF)

	// Company profile routes
	protected.GET("/company", companyHandlers.GetCompany)
	protected.PUT("/company", companyHandlers.UpdateCompany)
	protected.PUT("/company/settings", companyHandlers.UpdateSettings)
	protected.POST("/company/onboarding/complete", companyHandlers.CompleteOnboarding)
	protected.POST("/company/logo", companyHandlers.UploadLogo)
	protected.DELETE("/company/logo", companyHandlers.RemoveLogo)
	protected.GET("/company/logo", companyHandlers.GetLogoURL)

	// File routes
	protected.POST("/files", fileHandlers.UploadFile)
	protected.GET("/files/:id", fileHandlers.GetFile)
	protected.GET("/files/:id/download-url", fileHandlers.GetDownloadURL)
	protected.DELETE("/files/:id", fileHandlers.DeleteFile)
	protected.GET("/applications/:id/files", fileHandlers.ListApplicationFiles)

	// Dashboard routes
	protected.GET("/dashboard/stats", dashboardHandlers.GetStats)
	protected.GET("/dashboard/recent", dashboardHandlers.GetRecentApplications)

	// Start server and wait for a shutdown signal
	go func() {
		log.Printf("Agrodrones server v%s starting on port %s", version, cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
