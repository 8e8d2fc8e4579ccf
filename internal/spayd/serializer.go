// Package spayd serializes payment instructions into the Short Payment
// Descriptor (SPAYD) string format consumed by Czech payment apps, typically
// embedded in a QR code.
//
// The output format is a deterministic contract: fields are rendered as
// KEY:VALUE pairs, sorted bytewise by key, joined by "*" and prefixed with
// the fixed "SPD*1.0*" header. An optional CRC32 field is appended last and
// never takes part in the sorting.
package spayd

import (
	"fmt"
	"hash/crc32"
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"spayd/internal/payment/models"
	dErrors "spayd/pkg/domain-errors"
)

// Header is the fixed SPAYD protocol header.
const Header = "SPD*1.0*"

// maxAmountFractionDigits caps the rendered amount precision.
const maxAmountFractionDigits = 9

// Options control serialization behavior.
//
// When IncludeChecksum is set, a CRC-32 (IEEE) over the UTF-8 bytes of the
// field body is appended as a trailing CRC32 field. With normalization on,
// the body is plain ASCII, where UTF-8 and the ISO-8859-1 encoding used for
// QR rendering agree byte for byte.
type Options struct {
	IncludeChecksum bool
	NormalizeText   bool
}

// DefaultOptions returns the default serialization behavior: no checksum,
// text normalization on.
func DefaultOptions() Options {
	return Options{NormalizeText: true}
}

// Serialize renders a payment into its canonical SPAYD string.
// It fails when the primary bank account is missing; every other field is
// optional.
func Serialize(p models.Payment, opts Options) (string, error) {
	if p.Account == nil {
		return "", dErrors.NewField(dErrors.CodeMissingPrimaryAccount, "account", "",
			"primary bank account (IBAN) is required")
	}

	fields := map[string]string{
		"ACC": accountValue(*p.Account),
	}

	if len(p.AlternativeAccounts) > 0 {
		values := make([]string, len(p.AlternativeAccounts))
		for i, acc := range p.AlternativeAccounts {
			values[i] = accountValue(acc)
		}
		fields["ALT-ACC"] = strings.Join(values, ",")
	}

	if p.Amount != nil {
		fields["AM"] = formatAmount(*p.Amount)
	}
	if p.CurrencyCode != "" {
		fields["CC"] = p.CurrencyCode
	}
	if p.Reference != "" {
		fields["RF"] = p.Reference
	}
	if p.BeneficiaryName != "" {
		fields["RN"] = normalizeText(p.BeneficiaryName, opts.NormalizeText)
	}
	if p.DueDate != nil {
		fields["DT"] = p.DueDate.Format("20060102")
	}
	if p.InstantPayment {
		fields["PT"] = "IP"
	}
	if p.Note != "" {
		fields["MSG"] = normalizeText(p.Note, opts.NormalizeText)
	}
	if p.NotificationType != "" {
		fields["NT"] = p.NotificationType
	}
	if p.NotificationAddress != "" {
		fields["NTA"] = p.NotificationAddress
	}
	if p.ConstantSymbol != "" {
		fields["X-KS"] = p.ConstantSymbol
	}
	if p.VariableSymbol != "" {
		fields["X-VS"] = p.VariableSymbol
	}
	if p.SpecificSymbol != "" {
		fields["X-SS"] = p.SpecificSymbol
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, key := range keys {
		pairs[i] = key + ":" + fields[key]
	}
	body := strings.Join(pairs, "*")

	result := Header + body
	if opts.IncludeChecksum {
		result += fmt.Sprintf("*CRC32:%08X", crc32.ChecksumIEEE([]byte(body)))
	}
	return result, nil
}

// accountValue renders a bank account as IBAN or IBAN+BIC.
func accountValue(acc models.BankAccount) string {
	if acc.BIC != "" {
		return acc.IBAN + "+" + acc.BIC
	}
	return acc.IBAN
}

// formatAmount renders the shortest exact decimal representation: grouping
// off, at most 9 fraction digits, no trailing zeros, no fractional point on
// integral values.
func formatAmount(amount decimal.Decimal) string {
	s := amount.Truncate(maxAmountFractionDigits).String()
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// normalizeText trims the value, strips combining diacritical marks via
// Unicode canonical decomposition, and uppercases the result. When apply is
// false the raw value passes through unchanged.
func normalizeText(value string, apply bool) string {
	if !apply {
		return value
	}

	trimmed := strings.TrimSpace(value)
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripper, trimmed)
	if err != nil {
		stripped = trimmed
	}
	return strings.ToUpper(stripped)
}
