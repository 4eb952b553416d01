// Emberd is the coffee shop service. It serves the front-end
// configuration, mints session connection details, runs a barista per
// WebSocket connection, and writes order receipts to disk.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/agent"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/logging"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/order"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/service"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/session"
)

// shutdownTimeout bounds how long in-flight requests may linger after
// the stop signal.
const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "emberd: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Verbose, true)
	defer func() { _ = logger.Sync() }()

	store, err := order.NewFSStore(cfg.OrdersDir)
	if err != nil {
		logger.ComponentError(logging.ComponentStore, "Failed to open order store", zap.Error(err))
		os.Exit(1)
	}

	registry := agent.NewRegistry()
	manager := session.NewManager(session.Config{
		MaxSessions: cfg.MaxSessions,
		Registry:    registry,
		Receipts:    store,
		Logger:      logger,
	})

	svc := service.New(service.Config{
		AppConfig:    cfg.Shop,
		AdvertiseURL: cfg.AdvertiseURL,
		Manager:      manager,
		Store:        store,
		Logger:       logger,
	})

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: svc.Router(),
	}

	go func() {
		logger.ComponentInfo(logging.ComponentService, "Emberd listening",
			zap.String("addr", cfg.ListenAddr),
			zap.String("shop", cfg.Shop.CompanyName),
			zap.String("orders_dir", store.Dir()),
			zap.Strings("personas", registry.Names()),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.ComponentError(logging.ComponentService, "HTTP server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.ComponentInfo(logging.ComponentService, "Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.ComponentError(logging.ComponentService, "HTTP server shutdown error", zap.Error(err))
	}
	if err := manager.Close(); err != nil {
		logger.ComponentError(logging.ComponentSession, "Session teardown error", zap.Error(err))
	}

	usage := manager.Usage().Snapshot()
	logger.ComponentInfo(logging.ComponentMetrics, "Session totals",
		zap.Int64("sessions", usage.SessionsTotal),
		zap.Int64("messages", usage.Messages),
		zap.Int64("replies", usage.Replies),
		zap.Int64("orders", usage.Orders),
	)

	if err := store.Close(); err != nil {
		logger.ComponentError(logging.ComponentStore, "Order store close error", zap.Error(err))
	}
	logger.ComponentInfo(logging.ComponentService, "Shutdown complete")
}
