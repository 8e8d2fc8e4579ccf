package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	IBANsComposed      prometheus.Counter
	PaymentsSerialized prometheus.Counter
	QRCodesGenerated   prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	QRRenderDuration   prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		IBANsComposed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "spayd_ibans_composed_total",
			Help: "Total number of IBANs composed from national account numbers",
		}),
		PaymentsSerialized: promauto.NewCounter(prometheus.CounterOpts{
			Name: "spayd_payments_serialized_total",
			Help: "Total number of payment records serialized to SPAYD strings",
		}),
		QRCodesGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "spayd_qr_codes_generated_total",
			Help: "Total number of QR code images rendered",
		}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "spayd_validation_failures_total",
			Help: "Total number of rejected inputs by domain error code",
		}, []string{"code"}),
		QRRenderDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "spayd_qr_render_duration_seconds",
			Help:    "Duration of QR code rendering",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),
	}
}

func (m *Metrics) ObserveQRRender(start time.Time) {
	m.QRRenderDuration.Observe(time.Since(start).Seconds())
}
