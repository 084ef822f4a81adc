package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fening/airtime-gateway/internal/airtime_service/app"
	airtimeprovider "github.com/fening/airtime-gateway/internal/airtime_service/provider"
	pgrepo "github.com/fening/airtime-gateway/internal/airtime_service/repository/postgres"
	httptransport "github.com/fening/airtime-gateway/internal/airtime_service/transport/http"
	"github.com/fening/airtime-gateway/internal/platform/config"
	"github.com/fening/airtime-gateway/internal/platform/database"
	"github.com/fening/airtime-gateway/internal/platform/logger"
)

const serviceName = "airtime_service"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel)
	appLogger.Info("Airtime service starting...", "port", cfg.ServerPort, "environment", cfg.Environment)

	dbPool, err := database.NewDBPool(context.Background(), cfg.PostgresDSN)
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	appLogger.Info("Connected to PostgreSQL database")

	if cfg.DBAutoMigrate {
		if err := database.EnsureSchema(context.Background(), dbPool); err != nil {
			appLogger.Error("Failed to ensure database schema", "error", err)
			os.Exit(1)
		}
		appLogger.Info("Database schema ensured")
	}

	phoneRepo := pgrepo.NewPgPhoneNumberRepository(appLogger)
	txRepo := pgrepo.NewPgTransactionRepository(appLogger)

	var topupProvider airtimeprovider.TopupProvider
	if cfg.IsProduction() {
		httpClient := &http.Client{Timeout: time.Duration(cfg.ProviderTimeoutSeconds) * time.Second}
		topupProvider = airtimeprovider.NewOne4AllProvider(
			appLogger, cfg.ProviderBaseURL, cfg.ProviderRetailerID,
			cfg.ProviderAPIKey, cfg.ProviderAPISecret, httpClient,
		)
	} else {
		appLogger.Warn("Non-production environment: top-ups are simulated, no provider calls will be made")
		topupProvider = airtimeprovider.NewMockTopupProvider(appLogger)
	}

	topupService := app.NewTopupService(phoneRepo, txRepo, topupProvider, dbPool, appLogger)
	topupHandler := httptransport.NewTopupHandler(topupService, appLogger)
	adminHandler := httptransport.NewAdminHandler(topupService, appLogger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(httptransport.PrometheusMetricsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "Airtime service is healthy"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(v1 chi.Router) {
		topupHandler.RegisterRoutes(v1)
		adminHandler.RegisterRoutes(v1)
	})

	httpServer := &http.Server{Addr: fmt.Sprintf(":%d", cfg.ServerPort), Handler: r}
	appLogger.Info(fmt.Sprintf("Airtime server listening on port %d", cfg.ServerPort))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed to serve", "error", err)
		}
	}()

	quitChan := make(chan os.Signal, 1)
	signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)
	<-quitChan
	appLogger.Info("Shutdown signal received, shutting down HTTP server...")
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		appLogger.Error("HTTP server shutdown failed", "error", err)
	}
	appLogger.Info("Airtime service stopped")
}
