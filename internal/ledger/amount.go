package ledger

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Epsilon absorbs rounding noise in equality and zero checks.
var Epsilon = decimal.RequireFromString("0.005")

var (
	errMissingAmount  = errors.New("missing amount")
	errInvalidAmount  = errors.New("non-numeric amount")
	errNegativeAmount = errors.New("negative amount")
	errZeroAmount     = errors.New("zero amount")
)

// NearZero reports whether |d| <= Epsilon.
func NearZero(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(Epsilon)
}

// FormatAmount renders d with exactly two fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// parseAmount parses a raw amount that must be present, numeric and >= 0.
func parseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, errMissingAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errInvalidAmount
	}

	if d.IsNegative() && !NearZero(d) {
		return decimal.Zero, errNegativeAmount
	}

	if NearZero(d) {
		return decimal.Zero, nil
	}

	return d, nil
}

// parsePositive is parseAmount that also rejects zero.
func parsePositive(raw string) (decimal.Decimal, error) {
	d, err := parseAmount(raw)
	if err != nil {
		return decimal.Zero, err
	}

	if d.IsZero() {
		return decimal.Zero, errZeroAmount
	}

	return d, nil
}

// parseOptional treats an empty amount as zero.
func parseOptional(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}

	return parseAmount(raw)
}
