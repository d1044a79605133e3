// Command actions serves the custom actions the dialogue engine calls
// (form validation, booking submission, catalog browsing).
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travel-backend/actions"
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

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Fatal("❌ Database connect failed", zap.Error(err))
	}

	registry := actions.NewDefaultRegistry(actions.Dependencies{
		Bookings: services.NewBookingService(db),
		Catalog:  services.NewCatalogService(db),
		Messages: services.NewMessageService(db),
		Media:    utils.MediaBaseFromURL(cfg.PublicBaseURL),
	})
	router := routes.SetupActionRouter(controllers.NewActionController(registry))
	addr := ":" + cfg.ActionsPort

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("🚀 Action server starting", zap.String("addr", addr), zap.Strings("actions", registry.Names()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("❌ ListenAndServe()", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("⚠️  Shutdown signal received, shutting down action server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("❌ Server forced to shutdown", zap.Error(err))
	}

	logger.Info("✅ Action server stopped gracefully")
}
