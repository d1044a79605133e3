package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"travel-backend/config"
	"travel-backend/controllers"
	"travel-backend/routes"
	"travel-backend/services"
	"travel-backend/utils"
)

func main() {
	cfg := config.LoadConfig()
	logger := utils.InitLogger(cfg.IsProduction(), cfg.LogLevel)
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			logger.Fatal("❌ JWT_SECRET is not set")
		}
		cfg.JWTSecret = uuid.NewString()
		logger.Warn("⚠️  JWT_SECRET not set; using a random secret, sessions will not survive a restart")
	}
	if cfg.LLMAPIKey == "" {
		logger.Warn("⚠️  LLM_API_KEY not set; /chat/ai will answer with fallback replies")
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Fatal("❌ Database connect failed", zap.Error(err))
	}
	logger.Info("✅ Database connection established and migrations applied (if configured).")

	// Initialize services
	userService := services.NewUserService(db)
	catalogService := services.NewCatalogService(db)
	bookingService := services.NewBookingService(db)
	messageService := services.NewMessageService(db)
	imageService := services.NewImageService(cfg.MediaRoot)
	dialogue := services.NewDialogueClient(cfg.RasaURL, cfg.RasaTimeout)
	llm := services.NewLLMClient(services.LLMOptions{
		URL:     cfg.LLMAPIURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		Referer: cfg.LLMReferer,
		Title:   cfg.LLMTitle,
		Timeout: cfg.LLMTimeout,
	})

	// Initialize controllers
	ctl := routes.Controllers{
		Chat: controllers.NewChatController(catalogService, messageService, dialogue,
			dialogue.WithTimeout(cfg.RasaTestTimeout), llm),
		API: controllers.NewAPIController(catalogService, bookingService, messageService, userService),
		Auth: controllers.NewAuthController(userService, messageService, imageService,
			cfg.JWTSecret, cfg.SessionTTL, cfg.IsProduction()),
	}

	router := routes.SetupRouter(cfg, ctl)
	addr := ":" + cfg.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// must outlast the slowest upstream call (dialogue engine test scenario)
		WriteTimeout: cfg.RasaTestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("🚀 Server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("❌ ListenAndServe()", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("❌ Server forced to shutdown", zap.Error(err))
	}

	logger.Info("✅ Server stopped gracefully")
}
