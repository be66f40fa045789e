package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neighborhub/internal/bootstrap"
	"neighborhub/internal/config"
	"neighborhub/internal/handlers"
	"neighborhub/internal/middleware"
	"neighborhub/pkg/logger"
	"neighborhub/pkg/websocket"
	"neighborhub/routes"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("c", "", "path to the configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			Dist:        cfg.Sentry.Dist,
			Release:     cfg.App.Version,
		}); err != nil {
			appLogger.WithError(err).Warn("Sentry initialisation failed")
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialise application")
	}
	defer app.Close()
	app.Run(ctx)

	router := newRouter(cfg, app, appLogger)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Graceful shutdown failed")
	}
}

func newRouter(cfg *config.Config, app *bootstrap.App, appLogger *logger.Logger) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		appLogger.WithError(err).Warn("Invalid trusted proxies")
	}

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	router.Use(middleware.RequestID())
	router.Use(middleware.ClientInfo())
	router.Use(middleware.Logging(appLogger))
	router.Use(middleware.CORS(*cfg.Security))

	h := routes.Handlers{
		Request:  handlers.NewRequestHandler(app.Requests),
		Rating:   handlers.NewRatingHandler(app.Ratings),
		Activity: handlers.NewActivityHandler(app.Activity),
		Health:   handlers.NewHealthHandler(cfg.App.Version, app.HealthChecks),
	}
	if cfg.WebSocket.Enabled {
		h.WebSocket = websocket.NewHandler(app.Hub, cfg.WebSocket.AllowedOrigins)
	}

	routes.SetupRoutes(router, h, middleware.AuthRequired(cfg.Security.JWTSecret, appLogger), cfg.WebSocket.Path)

	return router
}
