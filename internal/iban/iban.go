// Package iban composes Czech national account numbers into IBAN format.
//
// A Czech IBAN is a fixed 24-character string: the country code "CZ", two
// check digits, and the 20-digit BBAN (bank code, zero-padded prefix,
// zero-padded account number). Both the account number and the optional
// prefix must pass the national modulo 11 self-check before composition.
package iban

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	dErrors "spayd/pkg/domain-errors"
)

const (
	countryCode = "CZ"

	// Length is the fixed length of a Czech IBAN.
	Length = 24

	bankCodeLength   = 4
	minAccountLength = 2
	maxAccountLength = 10
	prefixMaxLength  = 6

	// countryDigits is the base-36 encoding of "CZ" (C=12, Z=35) used by
	// the mod-97 rearrangement.
	countryDigits = "1235"
)

// Compose converts a Czech account number to IBAN format.
//
// bankCode must be exactly 4 digits, account 2 to 10 digits passing the
// modulo 11 self-check, and prefix is optional (up to 6 digits, also
// modulo 11 checked). An empty prefix is treated as zero.
func Compose(bankCode, account, prefix string) (string, error) {
	if err := validateBankCode(bankCode); err != nil {
		return "", err
	}
	if err := validateAccount(account); err != nil {
		return "", err
	}
	if err := validatePrefix(prefix); err != nil {
		return "", err
	}

	// Numeric zero-padding; values are already validated as digit strings
	// short enough to fit in an int64.
	prefixValue := int64(0)
	if prefix != "" {
		prefixValue, _ = strconv.ParseInt(prefix, 10, 64)
	}
	accountValue, _ := strconv.ParseInt(account, 10, 64)

	bban := bankCode + fmt.Sprintf("%06d", prefixValue) + fmt.Sprintf("%010d", accountValue)

	return countryCode + checkDigits(bban) + bban, nil
}

// checkDigits computes the two IBAN check digits for a Czech BBAN using the
// standard rearrange-and-mod-97 method. The remainder is accumulated one
// digit at a time so the arbitrarily long digit string never has to fit in
// an integer type.
func checkDigits(bban string) string {
	rearranged := bban + countryDigits + "00"

	remainder := 0
	for _, r := range rearranged {
		remainder = (remainder*10 + int(r-'0')) % 97
	}

	return fmt.Sprintf("%02d", 98-remainder)
}

// validMod11 reports whether a digit string passes the Czech modulo 11
// self-check: digits are weighted right to left, starting with weight 1 and
// doubling modulo 11 at each step. An empty string is trivially valid.
func validMod11(number string) bool {
	sum := 0
	weight := 1
	for i := len(number) - 1; i >= 0; i-- {
		sum += int(number[i]-'0') * weight
		weight = (weight * 2) % 11
	}
	return sum%11 == 0
}

func validateBankCode(bankCode string) error {
	switch {
	case bankCode == "":
		return dErrors.NewField(dErrors.CodeInvalidBankCode, "bankCode", bankCode,
			"bank code cannot be empty")
	case len(bankCode) != bankCodeLength:
		return dErrors.NewField(dErrors.CodeInvalidBankCode, "bankCode", bankCode,
			fmt.Sprintf("bank code must be exactly 4 digits, got length %d", len(bankCode)))
	case !isDigits(bankCode):
		return dErrors.NewField(dErrors.CodeInvalidBankCode, "bankCode", bankCode,
			"bank code must contain only digits")
	}
	return nil
}

func validateAccount(account string) error {
	switch {
	case account == "":
		return dErrors.NewField(dErrors.CodeInvalidAccountNumber, "accountNumber", account,
			"account number cannot be empty")
	case len(account) < minAccountLength:
		return dErrors.NewField(dErrors.CodeInvalidAccountNumber, "accountNumber", account,
			fmt.Sprintf("account number cannot be shorter than 2 digits, got length %d", len(account)))
	case len(account) > maxAccountLength:
		return dErrors.NewField(dErrors.CodeInvalidAccountNumber, "accountNumber", account,
			fmt.Sprintf("account number cannot exceed 10 digits, got length %d", len(account)))
	case !isDigits(account):
		return dErrors.NewField(dErrors.CodeInvalidAccountNumber, "accountNumber", account,
			"account number must contain only digits")
	case strings.Trim(account, "0") == "":
		return dErrors.NewField(dErrors.CodeInvalidAccountNumber, "accountNumber", account,
			"account number cannot be zero")
	case !validMod11(account):
		return dErrors.NewField(dErrors.CodeInvalidAccountNumber, "accountNumber", account,
			"account number must pass the modulo 11 checksum")
	}
	return nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	switch {
	case len(prefix) > prefixMaxLength:
		return dErrors.NewField(dErrors.CodeInvalidPrefix, "prefix", prefix,
			fmt.Sprintf("prefix cannot exceed 6 digits, got length %d", len(prefix)))
	case !isDigits(prefix):
		return dErrors.NewField(dErrors.CodeInvalidPrefix, "prefix", prefix,
			"prefix must contain only digits")
	case !validMod11(prefix):
		return dErrors.NewField(dErrors.CodeInvalidPrefix, "prefix", prefix,
			"prefix must pass the modulo 11 checksum")
	}
	return nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// Format groups an IBAN for display, inserting a space every 4 characters:
// "CZ55 0800 0000 0012 3456 7899". The input must be exactly 24 characters.
func Format(iban string) (string, error) {
	if len(iban) != Length {
		return "", dErrors.NewField(dErrors.CodeInvalidIBANLength, "iban", iban,
			fmt.Sprintf("IBAN must be exactly %d characters, got %d", Length, len(iban)))
	}

	var b strings.Builder
	b.Grow(Length + Length/4 - 1)
	for i := 0; i < Length; i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(iban[i : i+4])
	}
	return b.String(), nil
}

// Unformat removes all whitespace from a grouped IBAN. It performs no other
// validation.
func Unformat(iban string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, iban)
}
