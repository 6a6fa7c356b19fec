package ledger

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RecordMeta carries the fields shared by every raw record.
type RecordMeta struct {
	ID             uuid.UUID
	Date           time.Time
	Description    string
	PaymentAccount string
	Notes          string
}

// RawRecord is a source record before normalization. The set of
// implementations is closed: SaleRecord, PaymentRecord, DiscountRecord,
// ExtraExpenseRecord and UnmappedRecord.
//
// Amount fields hold the value exactly as read from the source and are only
// validated by Normalize.
type RawRecord interface {
	meta() RecordMeta
	source() SourceKind
}

// SaleRecord is a sale or studio sale. Kind defaults to TypeSale.
type SaleRecord struct {
	RecordMeta
	Kind      DocumentType
	InvoiceNo string
	Total     string
}

// PaymentRecord is a payment received, optionally settling an invoice.
type PaymentRecord struct {
	RecordMeta
	ReferenceNo string
	InvoiceNo   string
	Amount      string
}

// DiscountRecord is a discount granted on a sale.
type DiscountRecord struct {
	RecordMeta
	ReferenceNo string
	InvoiceNo   string
	Amount      string
}

// ExtraExpenseRecord is an extra charge added to an existing sale.
type ExtraExpenseRecord struct {
	RecordMeta
	ReferenceNo string
	InvoiceNo   string
	Amount      string
}

// UnmappedRecord is any other source row that already carries a debit or
// credit column.
type UnmappedRecord struct {
	RecordMeta
	DocumentType string
	ReferenceNo  string
	Debit        string
	Credit       string
}

func (r SaleRecord) meta() RecordMeta         { return r.RecordMeta }
func (r PaymentRecord) meta() RecordMeta      { return r.RecordMeta }
func (r DiscountRecord) meta() RecordMeta     { return r.RecordMeta }
func (r ExtraExpenseRecord) meta() RecordMeta { return r.RecordMeta }
func (r UnmappedRecord) meta() RecordMeta     { return r.RecordMeta }

func (SaleRecord) source() SourceKind         { return SourceSale }
func (PaymentRecord) source() SourceKind      { return SourcePayment }
func (DiscountRecord) source() SourceKind     { return SourceDiscount }
func (ExtraExpenseRecord) source() SourceKind { return SourceExtraExpense }
func (UnmappedRecord) source() SourceKind     { return SourceUnmapped }

// RawInvoice is the billing row behind a sale.
type RawInvoice struct {
	ID        uuid.UUID
	InvoiceNo string
	Date      time.Time
	Total     string
	Paid      string
	Items     json.RawMessage
}

// MetaOf returns the shared fields of r, or the zero RecordMeta for nil.
func MetaOf(r RawRecord) RecordMeta {
	r = deref(r)
	if r == nil {
		return RecordMeta{}
	}

	return r.meta()
}

// deref turns pointer variants into values. A nil pointer becomes a nil
// RawRecord.
func deref(r RawRecord) RawRecord {
	switch v := r.(type) {
	case *SaleRecord:
		if v == nil {
			return nil
		}
		return *v
	case *PaymentRecord:
		if v == nil {
			return nil
		}
		return *v
	case *DiscountRecord:
		if v == nil {
			return nil
		}
		return *v
	case *ExtraExpenseRecord:
		if v == nil {
			return nil
		}
		return *v
	case *UnmappedRecord:
		if v == nil {
			return nil
		}
		return *v
	}

	return r
}
