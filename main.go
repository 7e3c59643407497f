package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/furnistore/backend/internal/config"
	deliveryhttp "github.com/furnistore/backend/internal/delivery/http"
	"github.com/furnistore/backend/internal/repository/postgres"
	"github.com/furnistore/backend/internal/service"
)

func main() {
	cfg := config.Load()
	slog.SetLogLoggerLevel(cfg.LogLevel)

	// --- Database ---
	db, err := postgres.InitDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to init database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Seed(context.Background(), db); err != nil {
		slog.Error("Failed to seed catalog", "err", err)
		os.Exit(1)
	}

	// --- Repositories and services ---
	productRepo := postgres.NewProductRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	cartRepo := postgres.NewCartRepository(db)
	cartItemRepo := postgres.NewCartItemRepository(db)

	catalogSvc := service.NewCatalogService(productRepo)
	cartSvc := service.NewCartService(cartRepo, cartItemRepo, productRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	authSvc := service.NewAuthService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)

	// --- HTTP API ---
	router := gin.New()
	router.Use(gin.Recovery(), deliveryhttp.CORS(), deliveryhttp.RequestLogger())

	handler := deliveryhttp.NewHandler(catalogSvc, cartSvc, categorySvc, authSvc)
	handler.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		slog.Info("HTTP server starting", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", "err", err)
	}
}
