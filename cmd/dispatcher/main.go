package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/samirrijal/saferoute/internal/adapters/nats"
	"github.com/samirrijal/saferoute/internal/adapters/nominatim"
	"github.com/samirrijal/saferoute/internal/adapters/postgres"
	"github.com/samirrijal/saferoute/internal/core/usecases"
	"github.com/samirrijal/saferoute/internal/pkg/config"
	"github.com/samirrijal/saferoute/internal/pkg/logging"
	"github.com/samirrijal/saferoute/internal/pkg/telemetry"
	"github.com/samirrijal/saferoute/internal/workflows"
)

func main() {
	cfg, err := config.Load("saferoute-dispatcher")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, os.Getenv("LOG_FORMAT"))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Exporter, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Outbound push notifications go over NATS request/reply
	notifyConn, err := natsadapter.Connect(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer notifyConn.Close()

	geocoder := nominatim.New(cfg.Geocoding.BaseURL, cfg.Geocoding.UserAgent,
		nominatim.WithRateLimit(cfg.Geocoding.RateLimit),
		nominatim.WithTimeout(time.Duration(cfg.Geocoding.Timeout)*time.Second),
	)

	sosSvc := usecases.NewSOSService(postgres.NewAlertRepo(db), postgres.NewContactRepo(db), nil)
	geocodeSvc := usecases.NewGeocodeService(geocoder, nil, cfg.Geocoding.CacheTTL)

	// Connect to Temporal
	c, err := client.Dial(client.Options{
		HostPort: cfg.Temporal.HostPort,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	// Register workflow & activities
	w.RegisterWorkflow(workflows.SOSEscalationWorkflow)
	w.RegisterActivity(&workflows.SOSActivities{
		SOS:      sosSvc,
		Geocode:  geocodeSvc,
		Notifier: natsadapter.NewNotifier(notifyConn),
	})

	if err := w.Start(); err != nil {
		log.Fatalf("worker: %v", err)
	}
	defer w.Stop()

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats subscriber: %v", err)
	}
	defer sub.Close()

	if err := workflows.DispatchAlerts(ctx, sub, c, cfg.Temporal.TaskQueue); err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	slog.Info("sos dispatcher started", "task_queue", cfg.Temporal.TaskQueue)
	<-ctx.Done()
	slog.Info("sos dispatcher stopping")
}
