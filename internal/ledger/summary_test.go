package ledger_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/arledger/internal/ledger"
)

func TestStatusOf(t *testing.T) {
	type testCase struct {
		name    string
		paid    string
		pending string
		want    ledger.InvoiceStatus
	}

	tests := []testCase{
		{name: "FullyPaid", paid: "1000", pending: "0", want: ledger.InvoiceFullyPaid},
		{name: "RoundingNoiseIsPaid", paid: "999.996", pending: "0.004", want: ledger.InvoiceFullyPaid},
		{name: "Partial", paid: "400", pending: "600", want: ledger.InvoicePartiallyPaid},
		{name: "Unpaid", paid: "0", pending: "600", want: ledger.InvoiceUnpaid},
		{name: "DustPaymentIsUnpaid", paid: "0.004", pending: "600", want: ledger.InvoiceUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.StatusOf(dec(tt.paid), dec(tt.pending)))
		})
	}
}

func TestDeriveInvoice_FullyPaid(t *testing.T) {
	inv, err := ledger.DeriveInvoice(ledger.RawInvoice{
		ID:        uuid.New(),
		InvoiceNo: "INV-1",
		Date:      date(2024, 1, 1),
		Total:     "1000",
		Paid:      "1000",
	})
	require.NoError(t, err)

	assert.Equal(t, ledger.InvoiceFullyPaid, inv.Status)
	assert.True(t, inv.PendingAmount.IsZero())

	report := ledger.ClassifyAging([]ledger.Invoice{inv}, date(2024, 12, 31))
	assert.True(t, report.TotalOutstanding.IsZero())

	for _, b := range report.Buckets {
		assert.Zero(t, b.Count, b.Label)
	}
}

func TestDeriveInvoice_OverpaidClampsPending(t *testing.T) {
	inv, err := ledger.DeriveInvoice(ledger.RawInvoice{
		InvoiceNo: "INV-2",
		Date:      date(2024, 1, 1),
		Total:     "100",
		Paid:      "150",
	})
	require.NoError(t, err)

	assertAmount(t, "0.00", inv.PendingAmount)
	assert.Equal(t, ledger.InvoiceFullyPaid, inv.Status)
}

func TestDeriveInvoices_SkipsMalformed(t *testing.T) {
	raws := []ledger.RawInvoice{
		{ID: uuid.New(), InvoiceNo: "OK", Date: date(2024, 1, 1), Total: "50"},
		{ID: uuid.New(), InvoiceNo: "BAD", Date: date(2024, 1, 1), Total: "n/a"},
		{ID: uuid.New(), InvoiceNo: "NODATE", Total: "10"},
	}

	invoices, warnings := ledger.DeriveInvoices(raws)

	require.Len(t, invoices, 1)
	assert.Equal(t, ledger.InvoiceUnpaid, invoices[0].Status)
	assertAmount(t, "50.00", invoices[0].PendingAmount)

	require.Len(t, warnings, 2)
	assert.Equal(t, ledger.SourceInvoice, warnings[0].Source)
	assert.Equal(t, raws[1].ID.String(), warnings[0].RecordID)
}

func TestSummarize(t *testing.T) {
	from, to := date(2024, 1, 1), date(2024, 1, 31)

	txs := []ledger.Transaction{
		{DocumentType: ledger.TypeSale, Date: date(2024, 1, 3), Debit: dec("500")},
		{DocumentType: ledger.TypeExpense, Date: date(2024, 1, 4), Debit: dec("25.25")},
		{DocumentType: ledger.TypePayment, Date: date(2024, 1, 5), Credit: dec("300")},
		{DocumentType: ledger.TypeDiscount, Date: date(2024, 1, 6), Credit: dec("20")},
	}

	opening := ledger.OpeningBalanceEntry(dec("1000"), from)
	seq := ledger.Sequence(txs, &opening, from, to)

	invoices := []ledger.Invoice{
		{InvoiceNo: "A", InvoiceTotal: dec("500"), PaidAmount: dec("500"), PendingAmount: dec("0"), Status: ledger.InvoiceFullyPaid},
		{InvoiceNo: "B", InvoiceTotal: dec("300"), PaidAmount: dec("100"), PendingAmount: dec("200"), Status: ledger.InvoicePartiallyPaid},
		{InvoiceNo: "C", InvoiceTotal: dec("80"), PaidAmount: dec("0"), PendingAmount: dec("80"), Status: ledger.InvoiceUnpaid},
		{InvoiceNo: "D", InvoiceTotal: dec("20"), PaidAmount: dec("0"), PendingAmount: dec("20"), Status: ledger.InvoiceUnpaid},
	}

	s := ledger.Summarize(seq, invoices)

	assertAmount(t, "1000.00", s.OpeningBalance)
	assertAmount(t, "525.25", s.TotalDebit)
	assertAmount(t, "320.00", s.TotalCredit)
	assertAmount(t, "1205.25", s.ClosingBalance)
	assert.Equal(t, 4, s.TransactionCount)
	assert.True(t, s.ClosingBalance.Equal(seq[len(seq)-1].RunningBalance))

	assert.Equal(t, 4, s.Invoices.Count)
	assertAmount(t, "900.00", s.Invoices.TotalAmount)
	assertAmount(t, "600.00", s.Invoices.PaidAmount)
	assertAmount(t, "300.00", s.Invoices.PendingAmount)
	assert.Equal(t, 1, s.Invoices.FullyPaid.Count)
	assert.Equal(t, 1, s.Invoices.PartiallyPaid.Count)
	assert.Equal(t, 2, s.Invoices.Unpaid.Count)
	assertAmount(t, "100.00", s.Invoices.Unpaid.Amount)
	assertAmount(t, "200.00", s.Invoices.PartiallyPaid.Pending)
}

func TestSummarize_ClosingBalanceIgnoresDisplaySort(t *testing.T) {
	from, to := date(2024, 1, 1), date(2024, 1, 31)

	txs := []ledger.Transaction{
		{ReferenceNo: "S1", DocumentType: ledger.TypeSale, Date: date(2024, 1, 3), Debit: dec("70")},
		{ReferenceNo: "P1", DocumentType: ledger.TypePayment, Date: date(2024, 1, 4), Credit: dec("20")},
		{ReferenceNo: "S2", DocumentType: ledger.TypeSale, Date: date(2024, 1, 5), Debit: dec("5")},
	}

	opening := ledger.OpeningBalanceEntry(dec("10"), from)
	seq := ledger.Sequence(txs, &opening, from, to)
	want := ledger.Summarize(seq, nil).ClosingBalance

	for _, field := range []ledger.SortField{ledger.SortReference, ledger.SortDebit, ledger.SortBalance} {
		view := ledger.Apply(seq, ledger.Query{Sort: field, Order: ledger.OrderDesc})
		got := ledger.Summarize(view, nil).ClosingBalance
		assert.True(t, want.Equal(got), "sort by %s", field)
	}

	assertAmount(t, "65.00", want)
}
