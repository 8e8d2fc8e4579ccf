// Package main provides a one-shot CLI for composing Czech IBANs and
// generating SPAYD strings or QR code images without running the server.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"spayd/internal/iban"
	"spayd/internal/payment/models"
	"spayd/internal/qrcode"
	"spayd/internal/spayd"
)

func main() {
	var (
		bankCode   = flag.String("bank-code", "", "Bank code (4 digits). Required unless -iban is given.")
		account    = flag.String("account", "", "Account number (2-10 digits). Required unless -iban is given.")
		prefix     = flag.String("prefix", "", "Account prefix (up to 6 digits, optional).")
		directIBAN = flag.String("iban", "", "Use this IBAN directly instead of composing one.")
		bic        = flag.String("bic", "", "BIC of the payee bank (optional).")
		amount     = flag.String("amount", "", "Payment amount, e.g. 123.45 (optional).")
		currency   = flag.String("currency", "", "Currency code, e.g. CZK (optional).")
		dueDate    = flag.String("due", "", "Due date in YYYY-MM-DD format (optional).")
		vs         = flag.String("vs", "", "Variable symbol (optional).")
		ks         = flag.String("ks", "", "Constant symbol (optional).")
		ss         = flag.String("ss", "", "Specific symbol (optional).")
		message    = flag.String("msg", "", "Payment note (optional).")
		checksum   = flag.Bool("checksum", false, "Append the CRC32 integrity field.")
		rawText    = flag.Bool("raw-text", false, "Disable text normalization.")
		size       = flag.Int("size", 256, "QR image size in pixels.")
		out        = flag.String("out", "", "Write a QR PNG to this file instead of printing the SPAYD string.")
	)
	flag.Parse()

	resolvedIBAN := *directIBAN
	if resolvedIBAN == "" {
		composed, err := iban.Compose(*bankCode, *account, *prefix)
		if err != nil {
			fatalf("compose iban: %v", err)
		}
		resolvedIBAN = composed
	} else {
		resolvedIBAN = iban.Unformat(resolvedIBAN)
	}

	payment := models.Payment{
		Account:        &models.BankAccount{IBAN: resolvedIBAN, BIC: *bic},
		CurrencyCode:   *currency,
		VariableSymbol: *vs,
		ConstantSymbol: *ks,
		SpecificSymbol: *ss,
		Note:           *message,
	}

	if *amount != "" {
		value, err := decimal.NewFromString(*amount)
		if err != nil {
			fatalf("invalid amount %q: %v", *amount, err)
		}
		payment.Amount = &value
	}
	if *dueDate != "" {
		due, err := time.Parse("2006-01-02", *dueDate)
		if err != nil {
			fatalf("invalid due date %q: %v", *dueDate, err)
		}
		payment.DueDate = &due
	}

	opts := spayd.Options{IncludeChecksum: *checksum, NormalizeText: !*rawText}
	serialized, err := spayd.Serialize(payment, opts)
	if err != nil {
		fatalf("serialize payment: %v", err)
	}

	if *out == "" {
		fmt.Println(serialized)
		return
	}

	png, err := qrcode.New().Encode(serialized, *size)
	if err != nil {
		fatalf("render qr code: %v", err)
	}
	if err := os.WriteFile(*out, png, 0o644); err != nil {
		fatalf("write %s: %v", *out, err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", *out, len(png))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
