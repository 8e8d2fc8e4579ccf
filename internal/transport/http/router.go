// Package httptransport wires the public HTTP surface: payment endpoints,
// health probes, and Prometheus metrics behind the shared middleware stack.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spayd/internal/payment/handler"
	"spayd/internal/platform/config"
	"spayd/internal/platform/health"
	request "spayd/pkg/platform/middleware/request"
)

// NewRouter wires all public endpoints with middleware.
func NewRouter(
	cfg config.Server,
	payments *handler.Handler,
	healthHandler *health.Handler,
	requestMetrics *request.Metrics,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(logger))
	r.Use(request.Timeout(cfg.RequestTimeout))
	r.Use(request.BodyLimit(cfg.MaxBodyBytes))
	r.Use(request.ContentTypeJSON)
	r.Use(request.LatencyMiddleware(requestMetrics))

	healthHandler.Register(r)
	r.Handle("/metrics", promhttp.Handler())
	payments.Register(r)

	return r
}
