// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	paymenthandler "spayd/internal/payment/handler"
	paymentmetrics "spayd/internal/payment/metrics"
	"spayd/internal/payment/service"
	"spayd/internal/platform/config"
	"spayd/internal/platform/health"
	"spayd/internal/platform/logger"
	"spayd/internal/qrcode"
	httptransport "spayd/internal/transport/http"
	request "spayd/pkg/platform/middleware/request"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing spayd service",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"default_qr_size", cfg.DefaultQRSize,
	)

	encoder := qrcode.New()
	svc := service.New(encoder,
		service.WithLogger(log),
		service.WithMetrics(paymentmetrics.New()),
	)

	payments := paymenthandler.New(svc, log, cfg.DefaultQRSize)

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("qr_encoder", func() error {
		_, err := encoder.Encode("SPD*1.0*ACC:CZ5508000000001234567899", 64)
		return err
	})

	router := httptransport.NewRouter(cfg, payments, healthHandler, request.NewMetrics(), log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
