// Package httputil provides shared helpers for JSON encoding, decoding, and
// error translation at the HTTP boundary.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "spayd/pkg/domain-errors"
)

// ErrorResponse is the JSON envelope used for all error responses.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	Field            string `json:"field,omitempty"`
}

// WriteJSON encodes a response as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// headers already sent; nothing more we can do for the caller
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// WriteError centralizes domain error translation to HTTP responses.
// It translates transport-agnostic domain errors into HTTP status codes and
// a consistent JSON error envelope that names the offending field.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		WriteJSON(w, codeToHTTPStatus(domainErr.Code), ErrorResponse{
			Error:            string(domainErr.Code),
			ErrorDescription: domainErr.Message,
			Field:            domainErr.Field,
		})
		return
	}

	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: string(dErrors.CodeInternal),
	})
}

func codeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeInvalidBankCode,
		dErrors.CodeInvalidAccountNumber,
		dErrors.CodeInvalidPrefix,
		dErrors.CodeInvalidIBANLength,
		dErrors.CodeMissingPrimaryAccount,
		dErrors.CodeBadRequest,
		dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodePayloadTooLarge:
		return http.StatusUnprocessableEntity
	case dErrors.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
