package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonadmin/internal/api"
	"salonadmin/internal/config"
	"salonadmin/internal/console"
	"salonadmin/internal/events"
	"salonadmin/internal/export"
	"salonadmin/internal/logging"
	"salonadmin/internal/metrics"
	"salonadmin/internal/models"
	"salonadmin/internal/service"
	"salonadmin/internal/session"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, loadErr := loadConfigAndLogger()
	if loadErr != nil {
		return loadErr
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, store := initSessionStore(ctx, cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	if cfg.Monitoring.PrometheusEnabled {
		startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	eventBus := events.NewEventBus()
	subscribeBookingEvents(eventBus, &logger)

	client := api.NewClient(cfg.API, store, &logger)
	authManager := service.NewAuthManager(client, store, eventBus, &logger)
	client.OnSessionExpired(func() {
		authManager.Invalidate()
		fmt.Fprintln(os.Stderr, "Session expired, please log in again.")
	})

	if err := authManager.Restore(ctx); err != nil {
		logger.Warn().Err(err).Msg("stored session unavailable")
	}

	exporter := export.NewExporter(cfg.Console.ExportsPath, &logger)

	var ui *console.Console
	workflow := service.NewBookingWorkflow(client, eventBus, func(b *models.Booking, targetLabel string) bool {
		return ui.Confirm(b, targetLabel)
	}, &logger)
	ui = console.New(authManager, workflow, client, exporter, os.Stdin, os.Stdout, &logger)

	return ui.Run(ctx, os.Args[1:])
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	logger := baseLogger.With().Str("component", "console-main").Logger()

	return cfg, logger, closer, nil
}

// initSessionStore builds the token store: redis when configured, with an
// in-memory fallback behind a failover wrapper so a redis outage degrades to
// a per-process session instead of failing commands.
func initSessionStore(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, session.Store) {
	fallback := session.NewMemoryStore()

	if cfg.Redis.Address == "" {
		logger.Debug().Msg("redis not configured, using in-memory session store")
		return nil, fallback
	}

	redisClient := session.NewRedisClient(cfg.Redis)
	if err := session.Ping(ctx, redisClient); err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable")
	}

	primary := session.NewRedisStore(redisClient, "salonadmin", cfg.Console.SessionTTL)
	return redisClient, session.NewFailoverStore(primary, fallback, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	metrics.Register()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info().Int("port", port).Msg("metrics server started")
}

func subscribeBookingEvents(bus *events.EventBus, logger *zerolog.Logger) {
	logTransition := func(ev *events.Event) error {
		var payload events.BookingEventPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
			return nil
		}

		logger.Info().
			Str("event", ev.Type).
			Int64("booking_id", payload.BookingID).
			Str("from", payload.FromStatus).
			Str("to", payload.ToStatus).
			Msg("booking transition recorded")
		return nil
	}

	bus.Subscribe(events.EventBookingConfirmed, logTransition)
	bus.Subscribe(events.EventBookingCompleted, logTransition)
	bus.Subscribe(events.EventBookingCancelled, logTransition)
}
