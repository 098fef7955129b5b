package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"strategy_dashboard/internal/app/bootstrap"
	"strategy_dashboard/internal/infrastructure/configloader"
	"strategy_dashboard/internal/infrastructure/restapi"
	"strategy_dashboard/internal/pkg/logger"
	"strategy_dashboard/internal/pkg/utils"
)

func main() {
	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync() //nolint:errcheck
	logger.InitSlog(zapLogger)
	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			zapLogger.Warn("Failed to close backends", zap.Error(err))
		}
	}()

	router := restapi.SetupRouter(restapi.Handlers{
		Portfolio:   restapi.NewPortfolioHandler(app.Portfolio),
		Catalog:     restapi.NewCatalogHandler(app.Catalog),
		Market:      restapi.NewMarketHandler(app.Market, cfg.CoinGecko.DefaultOHLCVDays),
		Preferences: restapi.NewPreferencesHandler(app.Preferences),
		Upstreams:   app.Upstreams,
	}, restapi.RouterOptions{AllowedOrigins: cfg.Server.AllowedOrigins}, zapLogger)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	go func() {
		zapLogger.Info("Server starting", zap.String("addr", cfg.Server.Port), zap.Any("upstreams", app.Upstreams))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	zapLogger.Info("Server exiting")
}
