package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// Justification: These are core error primitives used at every trust boundary.
// Unit tests ensure invariants like "wrapped domain errors preserve original code"
// and "errors.Is matches by code" are maintained.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeInvalidBankCode, Message: "bank code must be exactly 4 digits"}
		s.Equal("bank code must be exactly 4 digits", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeInvalidPrefix}
		s.Equal("invalid_prefix", err.Error())
	})
}

func (s *DomainErrorsSuite) TestNewField() {
	err := NewField(CodeInvalidAccountNumber, "accountNumber", "12ab", "account number must contain only digits")

	var domainErr *Error
	s.Require().True(errors.As(err, &domainErr))
	s.Equal(CodeInvalidAccountNumber, domainErr.Code)
	s.Equal("accountNumber", domainErr.Field)
	s.Equal("12ab", domainErr.Value)
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("png encoding failed")
		err := &Error{Code: CodeInternal, Message: "encoder error", Err: inner}
		s.Equal(inner, err.Unwrap())
	})

	s.Run("returns nil when no wrapped error", func() {
		err := &Error{Code: CodeBadRequest, Message: "bad request"}
		s.Nil(err.Unwrap())
	})

	s.Run("works with errors.Unwrap", func() {
		inner := errors.New("root cause")
		err := &Error{Code: CodeInternal, Err: inner}
		s.Equal(inner, errors.Unwrap(err))
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeInvalidPrefix, Message: "prefix too long"}
		err2 := &Error{Code: CodeInvalidPrefix, Message: "prefix failed checksum"}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes", func() {
		err1 := &Error{Code: CodeInvalidPrefix}
		err2 := &Error{Code: CodeInvalidBankCode}
		s.False(err1.Is(err2))
	})

	s.Run("does not match non-domain errors", func() {
		err := &Error{Code: CodeInternal}
		s.False(err.Is(errors.New("plain error")))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves code of wrapped domain errors", func() {
		inner := NewField(CodeInvalidAccountNumber, "accountNumber", "0000012", "failed checksum")
		err := Wrap(inner, CodeInternal, "compose failed")

		s.True(HasCode(err, CodeInvalidAccountNumber))
		var domainErr *Error
		s.Require().True(errors.As(err, &domainErr))
		s.Equal("accountNumber", domainErr.Field)
		s.Equal("0000012", domainErr.Value)
	})

	s.Run("uses given code for plain errors", func() {
		err := Wrap(errors.New("boom"), CodeInternal, "something failed")
		s.True(HasCode(err, CodeInternal))
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.Run("matches through wrapping", func() {
		err := Wrap(New(CodeMissingPrimaryAccount, "bank account is required"), CodeInternal, "serialize failed")
		s.True(HasCode(err, CodeMissingPrimaryAccount))
	})

	s.Run("false for nil", func() {
		s.False(HasCode(nil, CodeInternal))
	})

	s.Run("false for plain errors", func() {
		s.False(HasCode(errors.New("plain"), CodeInternal))
	})
}
