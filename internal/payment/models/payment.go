// Package models holds the payment domain types and the HTTP request and
// response shapes built on top of them.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyCZK is the domestic currency code.
const CurrencyCZK = "CZK"

// BankAccount identifies a payee account. IBAN is required; BIC is optional.
// Immutable value object.
type BankAccount struct {
	IBAN string
	BIC  string
}

// Payment is a single payment instruction. Only Account is required; every
// other field is optional and omitted from the serialized form when unset.
type Payment struct {
	Account             *BankAccount
	AlternativeAccounts []BankAccount
	Amount              *decimal.Decimal
	CurrencyCode        string
	DueDate             *time.Time
	VariableSymbol      string
	ConstantSymbol      string
	SpecificSymbol      string
	Reference           string
	Note                string
	NotificationType    string
	NotificationAddress string
	InstantPayment      bool
	BeneficiaryName     string
}
