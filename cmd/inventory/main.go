package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/tair/stock-reservation/internal/config"
	"github.com/tair/stock-reservation/internal/inventory"
	"github.com/tair/stock-reservation/internal/inventory/client"
	httpDelivery "github.com/tair/stock-reservation/internal/inventory/delivery/http"
	"github.com/tair/stock-reservation/internal/inventory/domain"
	"github.com/tair/stock-reservation/internal/inventory/notifier"
	"github.com/tair/stock-reservation/kafka"
	"github.com/tair/stock-reservation/pkg/database"
	"github.com/tair/stock-reservation/pkg/logger"
	"github.com/tair/stock-reservation/pkg/tracing"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "stock-reservation-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting stock reservation service")

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
		}
	}()

	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "stockdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(&domain.Product{}, &domain.Reservation{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Dedicated raw connection for the health check, kept apart from gorm's pool
	healthDB, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open health check connection")
	}
	defer healthDB.Close()

	logger.Logger.Info().Msg("Database initialized successfully")

	cfg := config.Load()
	logger.Logger.Info().
		Int("low_stock_threshold", cfg.LowStockThreshold).
		Dur("reservation_ttl", cfg.ReservationTTL).
		Int("max_purchase_quantity", cfg.MaxPurchaseQuantity).
		Msg("Configuration loaded")

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	publisher, err := kafka.NewPublisher(brokers)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize Kafka publisher")
	}
	defer publisher.Close()

	vendorClient := client.NewVendorServiceClient(getEnv("USER_SERVICE_URL", "http://localhost:8080"))
	alerter := notifier.NewLowStockNotifier(vendorClient, publisher)

	handler, err := inventory.InitializeHTTPHandler(db, cfg, alerter)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	httpPort := getEnv("HTTP_PORT", "8082")
	startHTTPServer(handler, healthDB, httpPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(handler *httpDelivery.InventoryHandler, db *sql.DB, port string) {
	router := mux.NewRouter()

	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server starting")

	go func() {
		if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
