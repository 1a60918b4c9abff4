package main

import (
	"context"
	"fmt"

	"github.com/tournevent/aramexbridge/internal/config"
	"github.com/tournevent/aramexbridge/internal/events"
	"github.com/tournevent/aramexbridge/internal/service"
	"github.com/tournevent/aramexbridge/internal/store"
	"github.com/tournevent/aramexbridge/internal/telemetry"
	"github.com/tournevent/aramexbridge/pkg/shipper/aramex"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.OTELEnabled {
		return nil, noop, nil
	}

	tracer, shutdown, err := telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version, cfg.Attributes()...)
	if err != nil {
		return nil, noop, err
	}
	return tracer, shutdown, nil
}

func initSettings(cfg *config.Config) (aramex.SettingsProvider, error) {
	if cfg.Aramex.SettingsFile != "" {
		settings, err := config.LoadSettingsFile(cfg.Aramex.SettingsFile)
		if err != nil {
			return nil, err
		}
		return settings, nil
	}
	return config.EnvSettings{Aramex: cfg.Aramex}, nil
}

func initStore(ctx context.Context, cfg *config.Config, logger *otelzap.Logger) (store.Store, func() error, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("Using in-memory shipment store")
		return store.NewMemoryStore(), func() error { return nil }, nil
	}

	pg, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, nil, fmt.Errorf("migrating shipment store: %w", err)
	}
	logger.Info("Using PostgreSQL shipment store")
	return pg, pg.Close, nil
}

func initPublisher(cfg *config.Config, logger *otelzap.Logger) events.Publisher {
	if cfg.KafkaBroker == "" {
		return events.NopPublisher{}
	}
	logger.Info("Publishing shipment events",
		zap.String("broker", cfg.KafkaBroker),
		zap.String("topic", cfg.KafkaTopic),
	)
	return events.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
}

// initService wires the carrier client, store and publisher. The returned
// function releases them.
func initService(ctx context.Context, cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer, metrics *telemetry.Metrics) (*service.Service, func(), error) {
	settings, err := initSettings(cfg)
	if err != nil {
		return nil, nil, err
	}

	client := aramex.New(aramex.Config{
		BaseURL: cfg.Aramex.BaseURL,
		Timeout: cfg.Aramex.Timeout,
		UseMock: cfg.Aramex.UseMock,
	}, settings, logger, tracer)

	st, closeStore, err := initStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	publisher := initPublisher(cfg, logger)

	opts := []service.Option{service.WithPublisher(publisher)}
	if metrics != nil {
		opts = append(opts, service.WithMetrics(metrics))
	}
	svc := service.New(client, st, logger, opts...)

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("Failed to close event publisher", zap.Error(err))
		}
		if err := closeStore(); err != nil {
			logger.Warn("Failed to close shipment store", zap.Error(err))
		}
	}
	return svc, cleanup, nil
}
