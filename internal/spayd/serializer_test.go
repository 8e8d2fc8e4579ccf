package spayd

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"spayd/internal/payment/models"
	dErrors "spayd/pkg/domain-errors"
)

// SerializerSuite tests SPAYD string serialization.
//
// Justification: the output is a bit-exact external contract. Field ordering,
// amount formatting, and the CRC32 suffix are all observable by payment apps
// scanning the generated QR codes; vectors come from the paylibo reference
// generator (https://api.paylibo.com/paylibo/generator/string).
type SerializerSuite struct {
	suite.Suite
}

func TestSerializerSuite(t *testing.T) {
	suite.Run(t, new(SerializerSuite))
}

func (s *SerializerSuite) serialize(p models.Payment, opts Options) string {
	result, err := Serialize(p, opts)
	s.Require().NoError(err)
	return result
}

func amount(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func (s *SerializerSuite) TestAccountOnly() {
	p := models.Payment{
		Account: &models.BankAccount{IBAN: "CZ5508000000001234567899", BIC: "GIBACZPX"},
	}
	s.Equal("SPD*1.0*ACC:CZ5508000000001234567899+GIBACZPX", s.serialize(p, DefaultOptions()))
}

func (s *SerializerSuite) TestAccountWithoutBIC() {
	p := models.Payment{
		Account: &models.BankAccount{IBAN: "CZ5508000000001234567899"},
	}
	s.Equal("SPD*1.0*ACC:CZ5508000000001234567899", s.serialize(p, DefaultOptions()))
}

func (s *SerializerSuite) TestMissingPrimaryAccount() {
	_, err := Serialize(models.Payment{}, DefaultOptions())
	s.True(dErrors.HasCode(err, dErrors.CodeMissingPrimaryAccount))
	s.ErrorContains(err, "primary bank account")
}

func (s *SerializerSuite) TestAllFields() {
	p := models.Payment{
		Account: &models.BankAccount{IBAN: "CZ5508000000001234567899", BIC: "GIBACZPX"},
		AlternativeAccounts: []models.BankAccount{
			{IBAN: "SK3581800000510543524521", BIC: "TATRSKBX"},
			{IBAN: "SK3112000000001987426375"},
		},
		Amount:         amount("123.45"),
		CurrencyCode:   models.CurrencyCZK,
		DueDate:        date(2029, time.January, 31),
		VariableSymbol: "22222",
		SpecificSymbol: "11111",
		ConstantSymbol: "0308",
		Note:           "ZPRAVA PRO PRIJEMCE",
	}

	expected := "SPD*1.0*ACC:CZ5508000000001234567899+GIBACZPX" +
		"*ALT-ACC:SK3581800000510543524521+TATRSKBX,SK3112000000001987426375" +
		"*AM:123.45*CC:CZK*DT:20290131*MSG:ZPRAVA PRO PRIJEMCE" +
		"*X-KS:0308*X-SS:11111*X-VS:22222"
	s.Equal(expected, s.serialize(p, DefaultOptions()))
}

func (s *SerializerSuite) TestTextNormalization() {
	p := models.Payment{
		Account: &models.BankAccount{IBAN: "CZ5508000000001234567899", BIC: "GIBACZPX"},
		Note:    "   Zpráva pro příjemce   ",
	}

	s.Run("diacritics stripped and uppercased", func() {
		s.Equal("SPD*1.0*ACC:CZ5508000000001234567899+GIBACZPX*MSG:ZPRAVA PRO PRIJEMCE",
			s.serialize(p, DefaultOptions()))
	})

	s.Run("raw value passes through when disabled", func() {
		s.Equal("SPD*1.0*ACC:CZ5508000000001234567899+GIBACZPX*MSG:   Zpráva pro příjemce   ",
			s.serialize(p, Options{NormalizeText: false}))
	})

	s.Run("applies to beneficiary name", func() {
		named := models.Payment{
			Account:         p.Account,
			BeneficiaryName: " Petr Dvořák ",
		}
		s.Equal("SPD*1.0*ACC:CZ5508000000001234567899+GIBACZPX*RN:PETR DVORAK",
			s.serialize(named, DefaultOptions()))
	})
}

func (s *SerializerSuite) TestFullStringWithAmountCurrencyDateNote() {
	p := models.Payment{
		Account:      &models.BankAccount{IBAN: "CZ5508000000001234567899", BIC: "GIBACZPX"},
		Amount:       amount("123.45"),
		CurrencyCode: models.CurrencyCZK,
		DueDate:      date(2029, time.January, 31),
		Note:         "   Zpráva pro příjemce   ",
	}
	s.Equal("SPD*1.0*ACC:CZ5508000000001234567899+GIBACZPX*AM:123.45*CC:CZK*DT:20290131*MSG:ZPRAVA PRO PRIJEMCE",
		s.serialize(p, DefaultOptions()))
}

func (s *SerializerSuite) TestChecksum() {
	p := models.Payment{
		Account:        &models.BankAccount{IBAN: "CZ5508000000001234567899", BIC: "GIBACZPX"},
		Amount:         amount("123.45"),
		CurrencyCode:   models.CurrencyCZK,
		DueDate:        date(2029, time.January, 31),
		VariableSymbol: "22222",
		SpecificSymbol: "11111",
		ConstantSymbol: "0308",
		Note:           "ZPRAVA PRO PRIJEMCE",
	}

	s.Run("appends CRC32 field last", func() {
		expected := "SPD*1.0*ACC:CZ5508000000001234567899+GIBACZPX*AM:123.45*CC:CZK*DT:20290131" +
			"*MSG:ZPRAVA PRO PRIJEMCE*X-KS:0308*X-SS:11111*X-VS:22222*CRC32:56674E89"
		s.Equal(expected, s.serialize(p, Options{IncludeChecksum: true, NormalizeText: true}))
	})

	s.Run("checksum covers the field body only", func() {
		minimal := models.Payment{
			Account: &models.BankAccount{IBAN: "CZ5508000000001234567899", BIC: "GIBACZPX"},
		}
		s.Equal("SPD*1.0*ACC:CZ5508000000001234567899+GIBACZPX*CRC32:4E4A30A3",
			s.serialize(minimal, Options{IncludeChecksum: true, NormalizeText: true}))
	})
}

func (s *SerializerSuite) TestAmountFormatting() {
	cases := []struct {
		in, out string
	}{
		{"123.45", "123.45"},
		{"123.450", "123.45"},
		{"100", "100"},
		{"100.00", "100"},
		{"0.5", "0.5"},
		{"0.1234567891", "0.123456789"},
		{"1000000.01", "1000000.01"},
	}
	for _, tc := range cases {
		s.Run(tc.in, func() {
			p := models.Payment{
				Account: &models.BankAccount{IBAN: "CZ5508000000001234567899"},
				Amount:  amount(tc.in),
			}
			s.Equal("SPD*1.0*ACC:CZ5508000000001234567899*AM:"+tc.out, s.serialize(p, DefaultOptions()))
		})
	}
}

func (s *SerializerSuite) TestInstantPaymentFlag() {
	p := models.Payment{
		Account: &models.BankAccount{IBAN: "CZ5508000000001234567899"},
	}

	s.Run("false emits nothing", func() {
		s.NotContains(s.serialize(p, DefaultOptions()), "PT:")
	})

	s.Run("true emits literal IP", func() {
		p.InstantPayment = true
		s.Equal("SPD*1.0*ACC:CZ5508000000001234567899*PT:IP", s.serialize(p, DefaultOptions()))
	})
}

func (s *SerializerSuite) TestVerbatimFields() {
	p := models.Payment{
		Account:             &models.BankAccount{IBAN: "CZ5508000000001234567899"},
		Reference:           "1234567890123456",
		NotificationType:    "E",
		NotificationAddress: "payments@example.com",
	}
	s.Equal("SPD*1.0*ACC:CZ5508000000001234567899*NT:E*NTA:payments@example.com*RF:1234567890123456",
		s.serialize(p, DefaultOptions()))
}

func (s *SerializerSuite) TestKeyOrderingIsBytewise() {
	// ALT-ACC sorts before AM because '-' (0x2D) precedes 'M' bytewise,
	// and X-KS < X-SS < X-VS.
	p := models.Payment{
		Account:             &models.BankAccount{IBAN: "CZ5508000000001234567899"},
		AlternativeAccounts: []models.BankAccount{{IBAN: "CZ9501000000001234567899"}},
		Amount:              amount("1"),
		VariableSymbol:      "1",
		ConstantSymbol:      "2",
		SpecificSymbol:      "3",
	}
	s.Equal("SPD*1.0*ACC:CZ5508000000001234567899*ALT-ACC:CZ9501000000001234567899*AM:1*X-KS:2*X-SS:3*X-VS:1",
		s.serialize(p, DefaultOptions()))
}

func (s *SerializerSuite) TestAlternativeAccountsPreserveOrder() {
	p := models.Payment{
		Account: &models.BankAccount{IBAN: "CZ5508000000001234567899"},
		AlternativeAccounts: []models.BankAccount{
			{IBAN: "SK3112000000001987426375"},
			{IBAN: "SK3581800000510543524521", BIC: "TATRSKBX"},
		},
	}
	s.Contains(s.serialize(p, DefaultOptions()),
		"ALT-ACC:SK3112000000001987426375,SK3581800000510543524521+TATRSKBX")
}

func (s *SerializerSuite) TestDeterminism() {
	p := models.Payment{
		Account:      &models.BankAccount{IBAN: "CZ5508000000001234567899", BIC: "GIBACZPX"},
		Amount:       amount("99.90"),
		CurrencyCode: models.CurrencyCZK,
		Note:         "Fakturace",
	}
	first := s.serialize(p, Options{IncludeChecksum: true, NormalizeText: true})
	for range 10 {
		s.Equal(first, s.serialize(p, Options{IncludeChecksum: true, NormalizeText: true}))
	}
}
