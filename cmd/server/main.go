package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"posOrderManagement/internal/cart"
	"posOrderManagement/internal/config"
	"posOrderManagement/internal/db"
	"posOrderManagement/internal/events"
	"posOrderManagement/internal/keylock"
	"posOrderManagement/internal/metrics"
	"posOrderManagement/internal/order"
	"posOrderManagement/internal/server"
	"posOrderManagement/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Open DB
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("open db", zap.Error(err))
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.Warn("close db", zap.Error(err))
		}
	}()

	orderRepo := repository.NewOrderRepository(d)
	lineRepo := repository.NewCartLineRepository(d)
	productRepo := repository.NewProductRepository(d)
	addOnRepo := repository.NewAddOnRepository(d)
	chargesRepo := repository.NewChargesRepository(d)
	partnerRepo := repository.NewPartnerRepository(d)
	selectedRepo := repository.NewSelectedOrderRepository(d)

	// Order events reach in-process subscribers always, Kafka when brokers
	// are configured.
	var sinks []events.Sink
	if len(cfg.Events.Brokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		if err != nil {
			logger.Fatal("init kafka publisher", zap.Error(err))
		}
		defer func() { _ = kp.Close() }()
		sinks = append(sinks, kp)
		logger.Info("kafka events enabled",
			zap.Strings("brokers", cfg.Events.Brokers),
			zap.String("topic", cfg.Events.Topic))
	}
	bus := events.NewDispatcher(logger.Named("events"), sinks...)

	m := metrics.New("pos-order")
	locks := keylock.New()

	orderSvc := order.NewService(orderRepo, partnerRepo, selectedRepo, locks, bus, m, logger.Named("order"))
	cartSvc := cart.NewService(orderRepo, lineRepo, productRepo, addOnRepo, chargesRepo, locks, logger.Named("cart"))

	engine := server.New(cfg.Auth.JWTSecret, orderSvc, cartSvc,
		productRepo, addOnRepo, chargesRepo, partnerRepo, m, logger.Named("http"))

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()
	logger.Info("HTTP server listening", zap.String("address", cfg.HTTP.Address))

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
