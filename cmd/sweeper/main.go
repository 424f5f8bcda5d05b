package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tair/stock-reservation/internal/config"
	"github.com/tair/stock-reservation/internal/inventory"
	"github.com/tair/stock-reservation/internal/inventory/client"
	invdomain "github.com/tair/stock-reservation/internal/inventory/domain"
	"github.com/tair/stock-reservation/internal/inventory/notifier"
	invcommand "github.com/tair/stock-reservation/internal/inventory/usecase/command"
	"github.com/tair/stock-reservation/internal/order"
	orderdomain "github.com/tair/stock-reservation/internal/order/domain"
	ordercommand "github.com/tair/stock-reservation/internal/order/usecase/command"
	"github.com/tair/stock-reservation/kafka"
	"github.com/tair/stock-reservation/pkg/database"
	"github.com/tair/stock-reservation/pkg/logger"
	"github.com/tair/stock-reservation/pkg/tracing"
)

var sweepRecords = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sweeper_records_total",
		Help: "Records handled by the reconciliation sweeper",
	},
	[]string{"pass", "result"},
)

var sweepRuns = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sweeper_runs_total",
		Help: "Sweep passes executed",
	},
	[]string{"pass", "outcome"},
)

func main() {
	once := flag.Bool("once", false, "run each sweep pass a single time and exit")
	flag.Parse()

	serviceName := getEnv("OTEL_SERVICE_NAME", "reconciliation-sweeper")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Bool("once", *once).
		Msg("Starting reconciliation sweeper")

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
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

	if err := db.AutoMigrate(
		&invdomain.Product{}, &invdomain.Reservation{},
		&orderdomain.Order{}, &orderdomain.Payment{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	cfg := config.Load()

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	publisher, err := kafka.NewPublisher(brokers)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize Kafka publisher")
	}
	defer publisher.Close()

	vendorClient := client.NewVendorServiceClient(getEnv("USER_SERVICE_URL", "http://localhost:8080"))
	alerter := notifier.NewLowStockNotifier(vendorClient, publisher)

	expireSweep, err := inventory.InitializeExpireSweep(db, cfg, alerter)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize expire sweep")
	}

	holds, err := inventory.InitializeOrderHoldRelease(db, cfg, alerter)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize hold release")
	}

	abandonSweep, err := order.InitializeAbandonedOrderSweep(db, cfg, holds)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize abandoned order sweep")
	}

	prometheus.MustRegister(sweepRecords, sweepRuns)
	startMetricsServer(getEnv("HTTP_PORT", "8084"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *once {
		runExpirePass(ctx, expireSweep)
		runAbandonPass(ctx, abandonSweep)
		return
	}

	expireInterval := getEnvDuration("EXPIRE_SWEEP_INTERVAL", 5*time.Minute)
	abandonInterval := getEnvDuration("ABANDON_SWEEP_INTERVAL", 24*time.Hour)

	go schedule(ctx, expireInterval, func() { runExpirePass(ctx, expireSweep) })
	go schedule(ctx, abandonInterval, func() { runAbandonPass(ctx, abandonSweep) })

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down sweeper...")
	cancel()
}

// schedule runs fn immediately and then on every tick until ctx is done
func schedule(ctx context.Context, interval time.Duration, fn func()) {
	fn()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

func runExpirePass(ctx context.Context, handler *invcommand.ExpireReservationsHandler) {
	result, err := handler.Handle(ctx)
	sweepRecords.WithLabelValues("expired_reservations", "processed").Add(float64(result.Processed))
	sweepRecords.WithLabelValues("expired_reservations", "released").Add(float64(result.Released))
	sweepRecords.WithLabelValues("expired_reservations", "skipped").Add(float64(result.Skipped))
	if err != nil {
		sweepRuns.WithLabelValues("expired_reservations", "error").Inc()
		logger.Error(ctx).Err(err).Msg("Expired reservation sweep failed")
		return
	}
	sweepRuns.WithLabelValues("expired_reservations", "ok").Inc()
}

func runAbandonPass(ctx context.Context, handler *ordercommand.CancelAbandonedOrdersHandler) {
	result, err := handler.Handle(ctx)
	sweepRecords.WithLabelValues("abandoned_orders", "processed").Add(float64(result.Processed))
	sweepRecords.WithLabelValues("abandoned_orders", "cancelled").Add(float64(result.Cancelled))
	sweepRecords.WithLabelValues("abandoned_orders", "released").Add(float64(result.Released))
	sweepRecords.WithLabelValues("abandoned_orders", "skipped").Add(float64(result.Skipped))
	if err != nil {
		sweepRuns.WithLabelValues("abandoned_orders", "error").Inc()
		logger.Error(ctx).Err(err).Msg("Abandoned order sweep failed")
		return
	}
	sweepRuns.WithLabelValues("abandoned_orders", "ok").Inc()
}

func startMetricsServer(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	logger.Logger.Info().
		Str("port", port).
		Msg("Metrics server starting")

	go func() {
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			logger.Logger.Error().Err(err).Msg("Metrics server stopped")
		}
	}()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
