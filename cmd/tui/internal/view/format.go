package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/arledger/internal/ledger"
)

const loadTimeout = 10 * time.Second

// FormatAmount renders an amount with two decimals, or blank when zero.
func FormatAmount(d decimal.Decimal) string {
	if ledger.NearZero(d) {
		return ""
	}

	return ledger.FormatAmount(d)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// LoadCtx returns a context with a standard timeout for building a ledger.
func LoadCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), loadTimeout)
}
