package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/mama165/sdk-go/logs"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	metrics.Register()

	content, err := loadContent()
	if err != nil {
		return err
	}

	deliverer := contact.NewLogDeliverer(log, cfg.ContactToEmail)
	sessions := NewSessions(log, cfg.ContactSessionTTL, newControllerFactory(log, cfg, deliverer))

	router, err := newRouter(&server{content: content, sessions: sessions, log: log})
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		if err := sessions.Run(ctx, cfg.ContactSweepInterval); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Session sweeper stopped", "err", err)
		}
	}()

	srv := &http.Server{Addr: cfg.Address(), Handler: router}
	serveErr := make(chan error, 1)
	go func() {
		log.Info("Portfolio listening", "addr", cfg.Address())
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		stop()
		<-sweepDone
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-sweepDone
	return nil
}

// newControllerFactory builds each session's controller with the configured
// delays. Deliveries are counted before they reach d.
func newControllerFactory(log *slog.Logger, cfg Config, d contact.Deliverer) ControllerFactory {
	counted := contact.DelivererFunc(func(v contact.Values) {
		metrics.DeliveredTotal.Inc()
		d.Deliver(v)
	})
	return func(sessionID string) *contact.Controller {
		return contact.NewController(
			contact.WithLogger(log.With("session", sessionID)),
			contact.WithDeliverer(counted),
			contact.WithSendDelay(cfg.ContactSendDelay),
			contact.WithNoticeDuration(cfg.ContactNoticeDuration),
		)
	}
}
