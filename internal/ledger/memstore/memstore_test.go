package memstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/arledger/internal/ledger"
	"github.com/MrJamesThe3rd/arledger/internal/ledger/memstore"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func meta(d time.Time) ledger.RecordMeta {
	return ledger.RecordMeta{ID: uuid.New(), Date: d}
}

func TestStore_BuildLedger(t *testing.T) {
	s := memstore.New()
	accountID := s.Put(memstore.Account{
		Name:           "Studio client",
		OpeningBalance: decimal.NewFromInt(100),
		Records: []ledger.RawRecord{
			ledger.SaleRecord{RecordMeta: meta(day(2023, 12, 20)), InvoiceNo: "OLD", Total: "900"},
			ledger.PaymentRecord{RecordMeta: meta(day(2024, 1, 2)), ReferenceNo: "PAY-1", Amount: "300"},
			ledger.SaleRecord{RecordMeta: meta(day(2024, 1, 1)), InvoiceNo: "INV-1", Total: "500"},
			ledger.SaleRecord{RecordMeta: meta(day(2024, 2, 1)), InvoiceNo: "LATER", Total: "5"},
			ledger.PaymentRecord{RecordMeta: ledger.RecordMeta{ID: uuid.New()}, Amount: "1"},
		},
		Invoices: []ledger.RawInvoice{
			{InvoiceNo: "OLD", Date: day(2023, 12, 20), Total: "900", Paid: "900"},
			{InvoiceNo: "INV-1", Date: day(2024, 1, 1), Total: "500", Paid: "300"},
		},
	})

	svc := ledger.NewService(s, nil)

	result, err := svc.BuildLedger(context.Background(), accountID, day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)

	assert.Equal(t, "1000.00", result.Summary.OpeningBalance.StringFixed(2))
	assert.Equal(t, "1200.00", result.Summary.ClosingBalance.StringFixed(2))
	assert.Equal(t, 2, result.Summary.TransactionCount)
	require.Len(t, result.Invoices, 1)
	assert.Equal(t, "INV-1", result.Invoices[0].InvoiceNo)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "missing date", result.Warnings[0].Reason)
}

func TestStore_UnknownAccount(t *testing.T) {
	s := memstore.New()

	_, err := s.BeginSnapshot(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	assert.ErrorIs(t, s.AddRecords(uuid.New()), ledger.ErrAccountNotFound)
	assert.ErrorIs(t, s.AddInvoices(uuid.New()), ledger.ErrAccountNotFound)

	svc := ledger.NewService(s, nil)
	_, err = svc.BuildLedger(context.Background(), uuid.New(), day(2024, 1, 1), day(2024, 1, 2))
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestStore_SnapshotIsIsolatedFromLaterWrites(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	accountID := s.Put(memstore.Account{})

	require.NoError(t, s.AddRecords(accountID,
		ledger.SaleRecord{RecordMeta: meta(day(2024, 1, 5)), InvoiceNo: "A", Total: "10"},
	))

	snap, err := s.BeginSnapshot(ctx, accountID)
	require.NoError(t, err)
	defer snap.Close()

	require.NoError(t, s.AddRecords(accountID,
		ledger.SaleRecord{RecordMeta: meta(day(2024, 1, 6)), InvoiceNo: "B", Total: "20"},
	))
	require.NoError(t, s.AddInvoices(accountID, ledger.RawInvoice{InvoiceNo: "B", Date: day(2024, 1, 6), Total: "20"}))

	records, err := snap.TransactionsInRange(ctx, day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)
	assert.Len(t, records, 1)

	invoices, err := snap.InvoicesInRange(ctx, day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)
	assert.Empty(t, invoices)

	opening, err := snap.OpeningBalance(ctx, day(2024, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, "10.00", opening.StringFixed(2))
}

func TestStore_CancelledContext(t *testing.T) {
	s := memstore.New()
	accountID := s.Put(memstore.Account{})

	snap, err := s.BeginSnapshot(context.Background(), accountID)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = snap.OpeningBalance(ctx, day(2024, 1, 1))
	assert.ErrorIs(t, err, context.Canceled)
}
