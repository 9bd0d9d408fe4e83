package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/handlers"
	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

// uploadSlack leaves room for the form fields sent next to the resume.
const uploadSlack = 1 << 20

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log.JSON, cfg.Log.Debug || cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()
	zlog.Info("✅ Config loaded successfully",
		zap.String("env", cfg.Server.Env),
		zap.String("score_url", cfg.Services.ScoreURL),
		zap.String("notify_url", cfg.Services.NotifyURL),
	)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		zlog.Fatal("❌ Failed to create upload directory", zap.Error(err))
	}

	httpClient := &http.Client{Timeout: cfg.Services.HTTPTimeout}
	scoringClient := services.NewScoringClient(cfg.Services.ScoreURL, httpClient, zlog)
	notifierClient := services.NewNotifierClient(cfg.Services.NotifyURL, httpClient, zlog)

	renderer, err := services.NewEmailRenderer(time.Now)
	if err != nil {
		zlog.Fatal("❌ Failed to load email template", zap.Error(err))
	}
	zlog.Info("✅ Services initialized successfully")

	// Start worker
	worker := services.NewWorker(cfg.Worker.Concurrency, cfg.Worker.QueueSize, zlog)
	worker.Start(context.Background())
	zlog.Info("✅ Worker started successfully", zap.Int("concurrency", cfg.Worker.Concurrency))

	orchestrator := services.NewOrchestrator(
		repositories.NewSessionRepository(),
		storageService,
		services.NewPDFInspector(),
		scoringClient,
		notifierClient,
		renderer,
		worker,
		zlog,
	)

	janitor := services.NewJanitor(orchestrator, cfg.Session.TTL, cfg.Session.SweepInterval, zlog)
	janitor.Start(context.Background())

	// Initialize Handlers
	pageHandler, err := handlers.NewPageHandler(cfg.Storage.MaxFileSize)
	if err != nil {
		zlog.Fatal("❌ Failed to load page template", zap.Error(err))
	}
	resumeHandler := handlers.NewResumeHandler(orchestrator, cfg.Storage.MaxFileSize)
	routes := handlers.Handlers{
		Session: handlers.NewSessionHandler(orchestrator, cfg.Session.TTL, zlog),
		Page:    pageHandler,
		Resume:  resumeHandler,
		Match:   handlers.NewMatchHandler(orchestrator, resumeHandler),
		Notify:  handlers.NewNotifyHandler(orchestrator),
	}
	zlog.Info("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Screener",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + uploadSlack,
		ErrorHandler: routes.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.RegisterRoutes(app, routes)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("🛑 Shutting down server...")
		janitor.Stop()
		ended := orchestrator.EndAllSessions()
		worker.Stop()
		zlog.Info("sessions ended", zap.Int("count", ended))
		if err := app.Shutdown(); err != nil {
			zlog.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("❌ Failed to start server", zap.Error(err))
	}
}
