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

	"job-board/config"
	"job-board/domain"
	"job-board/infrastructure"
	"job-board/interfaces"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	os.Exit(start())
}

// start returns the process exit code so deferred cleanup, including the
// final logger flush, runs before the process exits.
func start() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	log, err := infrastructure.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("service stopped", zap.Error(err))
		return 1
	}
	return 0
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect store
	store, err := infrastructure.OpenJobStore(ctx, cfg.Database, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open job store: %w", err)
	}
	defer store.Close()
	log.Info("job store ready", zap.String("driver", cfg.Database.Driver))

	if cfg.SeedJobs {
		if err := infrastructure.SeedJobs(ctx, store, log); err != nil {
			return err
		}
	}

	// Connect RabbitMQ when configured
	var publisher domain.JobPublisher = infrastructure.NopPublisher{}
	if cfg.Broker.URL != "" {
		rmq, err := infrastructure.NewRabbitMQ(cfg.Broker.URL, cfg.Broker.Queue)
		if err != nil {
			return err
		}
		defer rmq.Close()
		publisher = rmq
		log.Info("publishing job events", zap.String("queue", cfg.Broker.Queue))
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := interfaces.NewRouter(log)
	interfaces.NewHTTPHandler(router, store, publisher, log, domain.PageLimits{
		DefaultSize: cfg.DefaultPageSize,
		MaxSize:     cfg.MaxPageSize,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("shutdown complete")
	return nil
}
