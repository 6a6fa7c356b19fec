package ledger

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentType identifies the business document behind a ledger line.
type DocumentType string

const (
	TypeOpeningBalance DocumentType = "opening_balance"
	TypeSale           DocumentType = "sale"
	TypeStudioSale     DocumentType = "studio_sale"
	TypePayment        DocumentType = "payment"
	TypeDiscount       DocumentType = "discount"
	TypePurchase       DocumentType = "purchase"
	TypeExpense        DocumentType = "expense"
	TypeJob            DocumentType = "job"
	TypeOther          DocumentType = "other"
)

// ParseDocumentType maps a free-form label ("Studio Sale", "studio-sale") to a
// DocumentType. Unknown labels map to TypeOther.
func ParseDocumentType(s string) DocumentType {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)

	switch DocumentType(norm) {
	case TypeOpeningBalance, TypeSale, TypeStudioSale, TypePayment, TypeDiscount,
		TypePurchase, TypeExpense, TypeJob:
		return DocumentType(norm)
	}

	return TypeOther
}

// Transaction is one ledger line.
type Transaction struct {
	ID             uuid.UUID
	Date           time.Time
	DocumentType   DocumentType
	ReferenceNo    string
	Description    string
	PaymentAccount string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	// RunningBalance is assigned once by Sequence and never recomputed.
	RunningBalance decimal.Decimal
	Notes          string
	LinkedInvoices []string
	LinkedPayments []string
}

// IsOpening reports whether t is the synthetic opening-balance line.
func (t Transaction) IsOpening() bool {
	return t.DocumentType == TypeOpeningBalance
}

// InvoiceStatus is derived from paid and pending amounts.
type InvoiceStatus string

const (
	InvoiceFullyPaid     InvoiceStatus = "fully_paid"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceUnpaid        InvoiceStatus = "unpaid"
)

// Invoice is the billing-side projection of a sale.
type Invoice struct {
	ID            uuid.UUID
	InvoiceNo     string
	Date          time.Time
	InvoiceTotal  decimal.Decimal
	PaidAmount    decimal.Decimal
	PendingAmount decimal.Decimal
	Status        InvoiceStatus
	Items         json.RawMessage
}

// StatusTotals aggregates the invoices sharing one status.
type StatusTotals struct {
	Count   int
	Amount  decimal.Decimal
	Pending decimal.Decimal
}

// InvoiceStats holds invoice aggregates for a ledger period.
type InvoiceStats struct {
	Count         int
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	PendingAmount decimal.Decimal
	FullyPaid     StatusTotals
	PartiallyPaid StatusTotals
	Unpaid        StatusTotals
}

// LedgerSummary holds period totals. TotalDebit and TotalCredit never include
// the opening-balance line.
type LedgerSummary struct {
	OpeningBalance   decimal.Decimal
	TotalDebit       decimal.Decimal
	TotalCredit      decimal.Decimal
	ClosingBalance   decimal.Decimal
	TransactionCount int
	Invoices         InvoiceStats
}

// Result is a fully built ledger for one account and date range.
type Result struct {
	AccountID    uuid.UUID
	From         time.Time
	To           time.Time
	Summary      LedgerSummary
	Transactions []Transaction
	Invoices     []Invoice
	Warnings     []Warning
}
