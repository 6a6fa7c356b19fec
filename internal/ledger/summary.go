package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Summarize derives period totals from a sequenced ledger and invoice
// aggregates from its invoices. It is the single place these totals are
// computed.
func Summarize(txs []Transaction, invoices []Invoice) LedgerSummary {
	s := LedgerSummary{
		OpeningBalance: decimal.Zero,
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
	}

	for _, tx := range txs {
		if tx.IsOpening() {
			s.OpeningBalance = tx.RunningBalance
			continue
		}

		s.TotalDebit = s.TotalDebit.Add(tx.Debit)
		s.TotalCredit = s.TotalCredit.Add(tx.Credit)
		s.TransactionCount++
	}

	s.ClosingBalance = s.OpeningBalance.Add(s.TotalDebit).Sub(s.TotalCredit)
	s.Invoices = aggregateInvoices(invoices)

	return s
}

func aggregateInvoices(invoices []Invoice) InvoiceStats {
	stats := InvoiceStats{
		TotalAmount:   decimal.Zero,
		PaidAmount:    decimal.Zero,
		PendingAmount: decimal.Zero,
		FullyPaid:     zeroTotals(),
		PartiallyPaid: zeroTotals(),
		Unpaid:        zeroTotals(),
	}

	for _, inv := range invoices {
		stats.Count++
		stats.TotalAmount = stats.TotalAmount.Add(inv.InvoiceTotal)
		stats.PaidAmount = stats.PaidAmount.Add(inv.PaidAmount)
		stats.PendingAmount = stats.PendingAmount.Add(inv.PendingAmount)

		var bucket *StatusTotals

		switch inv.Status {
		case InvoiceFullyPaid:
			bucket = &stats.FullyPaid
		case InvoicePartiallyPaid:
			bucket = &stats.PartiallyPaid
		default:
			bucket = &stats.Unpaid
		}

		bucket.Count++
		bucket.Amount = bucket.Amount.Add(inv.InvoiceTotal)
		bucket.Pending = bucket.Pending.Add(inv.PendingAmount)
	}

	return stats
}

func zeroTotals() StatusTotals {
	return StatusTotals{Amount: decimal.Zero, Pending: decimal.Zero}
}

// StatusOf classifies an invoice by its paid and pending amounts.
func StatusOf(paid, pending decimal.Decimal) InvoiceStatus {
	switch {
	case pending.LessThanOrEqual(Epsilon):
		return InvoiceFullyPaid
	case paid.GreaterThan(Epsilon):
		return InvoicePartiallyPaid
	default:
		return InvoiceUnpaid
	}
}

// DeriveInvoice computes the pending amount and status of a raw invoice.
func DeriveInvoice(raw RawInvoice) (Invoice, error) {
	total, err := parseAmount(raw.Total)
	if err != nil {
		return Invoice{}, fmt.Errorf("invoice total: %w", err)
	}

	paid, err := parseOptional(raw.Paid)
	if err != nil {
		return Invoice{}, fmt.Errorf("paid amount: %w", err)
	}

	if raw.Date.IsZero() {
		return Invoice{}, errMissingDate
	}

	pending := decimal.Max(decimal.Zero, total.Sub(paid))
	if NearZero(pending) {
		pending = decimal.Zero
	}

	return Invoice{
		ID:            raw.ID,
		InvoiceNo:     raw.InvoiceNo,
		Date:          raw.Date,
		InvoiceTotal:  total,
		PaidAmount:    paid,
		PendingAmount: pending,
		Status:        StatusOf(paid, pending),
		Items:         raw.Items,
	}, nil
}

// DeriveInvoices derives every invoice, skipping malformed rows with a warning.
func DeriveInvoices(raws []RawInvoice) ([]Invoice, []Warning) {
	invoices := make([]Invoice, 0, len(raws))

	var warnings []Warning

	for _, raw := range raws {
		inv, err := DeriveInvoice(raw)
		if err != nil {
			warnings = append(warnings, Warning{
				RecordID: raw.ID.String(),
				Source:   SourceInvoice,
				Reason:   err.Error(),
			})

			continue
		}

		invoices = append(invoices, inv)
	}

	return invoices, warnings
}
