package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange              = errors.New("invalid date range")
	ErrOpeningBalanceUnavailable = errors.New("opening balance unavailable")
	ErrAccountNotFound           = errors.New("account not found")
	ErrInvalidQuery              = errors.New("invalid ledger query")
)

// SourceKind names the source a raw record came from.
type SourceKind string

const (
	SourceSale         SourceKind = "sale"
	SourcePayment      SourceKind = "payment"
	SourceDiscount     SourceKind = "discount"
	SourceExtraExpense SourceKind = "extra_expense"
	SourceInvoice      SourceKind = "invoice"
	SourceUnmapped     SourceKind = "unmapped"
)

// Warning reports a record that was excluded from the ledger. Warnings are
// never fatal.
type Warning struct {
	RecordID string
	Source   SourceKind
	Reason   string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %s: %s", w.Source, w.RecordID, w.Reason)
}
