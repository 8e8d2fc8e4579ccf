package models

// ComposeIBANResponse returns the composed identifier in both compact and
// grouped display forms.
type ComposeIBANResponse struct {
	IBAN          string `json:"iban"`
	FormattedIBAN string `json:"formatted_iban"`
	BIC           string `json:"bic,omitempty"`
}

// SerializePaymentResponse returns the canonical SPAYD string.
type SerializePaymentResponse struct {
	Spayd string `json:"spayd"`
}
