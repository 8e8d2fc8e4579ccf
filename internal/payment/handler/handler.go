package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"spayd/internal/payment/models"
	"spayd/internal/spayd"
	dErrors "spayd/pkg/domain-errors"
	"spayd/pkg/platform/httputil"
	"spayd/pkg/requestcontext"
)

// Service defines the payment operations the HTTP layer delegates to.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	ComposeIBAN(ctx context.Context, bankCode, account, prefix, bic string) (models.BankAccount, string, error)
	SerializePayment(ctx context.Context, p models.Payment, opts spayd.Options) (string, error)
	GeneratePaymentQR(ctx context.Context, p models.Payment, opts spayd.Options, size int) ([]byte, string, error)
}

type Handler struct {
	service       Service
	logger        *slog.Logger
	defaultQRSize int
}

func New(service Service, logger *slog.Logger, defaultQRSize int) *Handler {
	return &Handler{service: service, logger: logger, defaultQRSize: defaultQRSize}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/iban", h.HandleComposeIBAN)
		r.Post("/payments/spayd", h.HandleSerializePayment)
		r.Post("/payments/qrcode", h.HandlePaymentQRCode)
	})
}

// HandleComposeIBAN composes a Czech IBAN from a national account number.
func (h *Handler) HandleComposeIBAN(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.ComposeIBANRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	account, formatted, err := h.service.ComposeIBAN(ctx, req.BankCode, req.AccountNumber, req.Prefix, req.BIC)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.ComposeIBANResponse{
		IBAN:          account.IBAN,
		FormattedIBAN: formatted,
		BIC:           account.BIC,
	})
}

// HandleSerializePayment serializes a payment record into its SPAYD string.
// Query parameters: checksum=true appends the CRC32 field, normalize=false
// disables text normalization.
func (h *Handler) HandleSerializePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.PaymentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	payment, err := req.ToPayment()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.SerializePayment(ctx, payment, serializeOptions(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.SerializePaymentResponse{Spayd: result})
}

// HandlePaymentQRCode serializes a payment and responds with a QR PNG.
// Accepts the same query parameters as the SPAYD endpoint plus size (pixels).
func (h *Handler) HandlePaymentQRCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.PaymentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	payment, err := req.ToPayment()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	size := h.defaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.NewField(dErrors.CodeBadRequest, "size", raw,
				"size must be an integer number of pixels"))
			return
		}
	}

	png, _, err := h.service.GeneratePaymentQR(ctx, payment, serializeOptions(r), size)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.logger.ErrorContext(ctx, "failed to write qr image", "error", err, "request_id", requestID)
	}
}

func serializeOptions(r *http.Request) spayd.Options {
	opts := spayd.DefaultOptions()
	query := r.URL.Query()
	if query.Get("checksum") == "true" {
		opts.IncludeChecksum = true
	}
	if query.Get("normalize") == "false" {
		opts.NormalizeText = false
	}
	return opts
}
