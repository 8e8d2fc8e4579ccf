package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	dErrors "spayd/pkg/domain-errors"
	"spayd/pkg/validation"
)

const dueDateLayout = "2006-01-02"

// ComposeIBANRequest asks for a Czech national account number to be composed
// into IBAN format. Bank code, account, and prefix validity is owned by the
// composer itself so its error taxonomy is surfaced untouched; only fields
// beyond its scope carry validate tags here.
type ComposeIBANRequest struct {
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
	Prefix        string `json:"prefix,omitempty"`
	BIC           string `json:"bic,omitempty" validate:"omitempty,bic"`
}

func (r *ComposeIBANRequest) Normalize() {
	r.BankCode = strings.TrimSpace(r.BankCode)
	r.AccountNumber = strings.TrimSpace(r.AccountNumber)
	r.Prefix = strings.TrimSpace(r.Prefix)
	r.BIC = strings.ToUpper(strings.TrimSpace(r.BIC))
}

func (r *ComposeIBANRequest) Validate() error {
	return validation.Validate(r)
}

// AccountPayload is a bank account reference supplied by the caller.
type AccountPayload struct {
	IBAN string `json:"iban" validate:"required,notblank"`
	BIC  string `json:"bic,omitempty" validate:"omitempty,bic"`
}

func (a AccountPayload) toDomain() BankAccount {
	return BankAccount{IBAN: a.IBAN, BIC: a.BIC}
}

// PaymentRequest is the wire shape of a payment instruction. Absence of the
// primary account is not rejected here; the serializer owns that rule and
// reports it as missing_primary_account.
type PaymentRequest struct {
	Account             *AccountPayload  `json:"account,omitempty"`
	AlternativeAccounts []AccountPayload `json:"alternative_accounts,omitempty" validate:"omitempty,dive"`
	Amount              string           `json:"amount,omitempty"`
	Currency            string           `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	DueDate             string           `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	VariableSymbol      string           `json:"variable_symbol,omitempty" validate:"omitempty,max=10,digits"`
	ConstantSymbol      string           `json:"constant_symbol,omitempty" validate:"omitempty,max=10,digits"`
	SpecificSymbol      string           `json:"specific_symbol,omitempty" validate:"omitempty,max=10,digits"`
	Reference           string           `json:"reference,omitempty" validate:"omitempty,max=16"`
	Message             string           `json:"message,omitempty" validate:"omitempty,max=60"`
	BeneficiaryName     string           `json:"beneficiary_name,omitempty" validate:"omitempty,max=35"`
	NotificationType    string           `json:"notification_type,omitempty" validate:"omitempty,oneof=P E"`
	NotificationAddress string           `json:"notification_address,omitempty" validate:"omitempty,max=320"`
	InstantPayment      bool             `json:"instant_payment,omitempty"`
}

func (r *PaymentRequest) Normalize() {
	r.Amount = strings.TrimSpace(r.Amount)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	r.DueDate = strings.TrimSpace(r.DueDate)
	r.VariableSymbol = strings.TrimSpace(r.VariableSymbol)
	r.ConstantSymbol = strings.TrimSpace(r.ConstantSymbol)
	r.SpecificSymbol = strings.TrimSpace(r.SpecificSymbol)
	if r.Account != nil {
		r.Account.IBAN = strings.TrimSpace(r.Account.IBAN)
		r.Account.BIC = strings.ToUpper(strings.TrimSpace(r.Account.BIC))
	}
	for i := range r.AlternativeAccounts {
		r.AlternativeAccounts[i].IBAN = strings.TrimSpace(r.AlternativeAccounts[i].IBAN)
		r.AlternativeAccounts[i].BIC = strings.ToUpper(strings.TrimSpace(r.AlternativeAccounts[i].BIC))
	}
}

func (r *PaymentRequest) Validate() error {
	return validation.Validate(r)
}

// ToPayment converts the wire shape into the domain payment record.
func (r *PaymentRequest) ToPayment() (Payment, error) {
	p := Payment{
		CurrencyCode:        r.Currency,
		VariableSymbol:      r.VariableSymbol,
		ConstantSymbol:      r.ConstantSymbol,
		SpecificSymbol:      r.SpecificSymbol,
		Reference:           r.Reference,
		Note:                r.Message,
		NotificationType:    r.NotificationType,
		NotificationAddress: r.NotificationAddress,
		InstantPayment:      r.InstantPayment,
		BeneficiaryName:     r.BeneficiaryName,
	}

	if r.Account != nil {
		acc := r.Account.toDomain()
		p.Account = &acc
	}
	for _, alt := range r.AlternativeAccounts {
		p.AlternativeAccounts = append(p.AlternativeAccounts, alt.toDomain())
	}

	if r.Amount != "" {
		amount, err := decimal.NewFromString(r.Amount)
		if err != nil {
			return Payment{}, dErrors.NewField(dErrors.CodeBadRequest, "amount", r.Amount,
				"amount must be a decimal number")
		}
		p.Amount = &amount
	}

	if r.DueDate != "" {
		due, err := time.Parse(dueDateLayout, r.DueDate)
		if err != nil {
			return Payment{}, dErrors.NewField(dErrors.CodeBadRequest, "due_date", r.DueDate,
				"due date must be in format YYYY-MM-DD")
		}
		p.DueDate = &due
	}

	return p, nil
}
