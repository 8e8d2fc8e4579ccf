package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"spayd/internal/iban"
	paymentmetrics "spayd/internal/payment/metrics"
	"spayd/internal/payment/models"
	"spayd/internal/spayd"
	dErrors "spayd/pkg/domain-errors"
)

// BarcodeEncoder renders a serialized payment string into image bytes.
type BarcodeEncoder interface {
	Encode(payload string, size int) ([]byte, error)
}

// Service orchestrates IBAN composition, SPAYD serialization, and QR
// rendering. The composition and serialization themselves are pure functions;
// the service adds logging and metrics around them.
type Service struct {
	encoder BarcodeEncoder
	logger  *slog.Logger
	metrics *paymentmetrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *paymentmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(encoder BarcodeEncoder, opts ...Option) *Service {
	s := &Service{encoder: encoder, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComposeIBAN converts a Czech bank code, account number, and optional prefix
// into a bank account with both compact and grouped IBAN forms.
func (s *Service) ComposeIBAN(ctx context.Context, bankCode, account, prefix, bic string) (models.BankAccount, string, error) {
	composed, err := iban.Compose(bankCode, account, prefix)
	if err != nil {
		s.countFailure(err)
		s.logger.WarnContext(ctx, "iban composition rejected", "error", err, "bank_code", bankCode)
		return models.BankAccount{}, "", err
	}

	formatted, err := iban.Format(composed)
	if err != nil {
		return models.BankAccount{}, "", dErrors.Wrap(err, dErrors.CodeInternal, "formatting composed IBAN")
	}

	if s.metrics != nil {
		s.metrics.IBANsComposed.Inc()
	}
	s.logger.InfoContext(ctx, "iban composed", "bank_code", bankCode)

	return models.BankAccount{IBAN: composed, BIC: bic}, formatted, nil
}

// SerializePayment renders a payment into its canonical SPAYD string.
func (s *Service) SerializePayment(ctx context.Context, p models.Payment, opts spayd.Options) (string, error) {
	result, err := spayd.Serialize(p, opts)
	if err != nil {
		s.countFailure(err)
		s.logger.WarnContext(ctx, "payment serialization rejected", "error", err)
		return "", err
	}

	if s.metrics != nil {
		s.metrics.PaymentsSerialized.Inc()
	}
	return result, nil
}

// GeneratePaymentQR serializes a payment and renders it as a QR PNG of the
// given pixel size. It returns the image bytes together with the serialized
// string so callers can expose both.
func (s *Service) GeneratePaymentQR(ctx context.Context, p models.Payment, opts spayd.Options, size int) ([]byte, string, error) {
	serialized, err := s.SerializePayment(ctx, p, opts)
	if err != nil {
		return nil, "", err
	}

	start := time.Now()
	png, err := s.encoder.Encode(serialized, size)
	if err != nil {
		s.countFailure(err)
		s.logger.WarnContext(ctx, "qr rendering failed", "error", err, "size", size, "payload_len", len(serialized))
		return nil, "", err
	}

	if s.metrics != nil {
		s.metrics.QRCodesGenerated.Inc()
		s.metrics.ObserveQRRender(start)
	}
	s.logger.InfoContext(ctx, "qr code generated", "size", size, "payload_len", len(serialized))

	return png, serialized, nil
}

func (s *Service) countFailure(err error) {
	if s.metrics == nil {
		return
	}
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		s.metrics.ValidationFailures.WithLabelValues(string(domainErr.Code)).Inc()
	}
}
