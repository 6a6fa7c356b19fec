package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/arledger/internal/ledger"
)

func TestNormalize_SignConvention(t *testing.T) {
	type testCase struct {
		name       string
		record     ledger.RawRecord
		wantType   ledger.DocumentType
		wantDebit  string
		wantCredit string
	}

	d := date(2024, 3, 1)

	tests := []testCase{
		{
			name:       "Sale",
			record:     ledger.SaleRecord{RecordMeta: meta(d, "sale"), InvoiceNo: "INV-1", Total: "500"},
			wantType:   ledger.TypeSale,
			wantDebit:  "500.00",
			wantCredit: "0.00",
		},
		{
			name:       "StudioSale",
			record:     ledger.SaleRecord{RecordMeta: meta(d, "studio"), Kind: ledger.TypeStudioSale, InvoiceNo: "ST-1", Total: "120.50"},
			wantType:   ledger.TypeStudioSale,
			wantDebit:  "120.50",
			wantCredit: "0.00",
		},
		{
			name:       "Payment",
			record:     ledger.PaymentRecord{RecordMeta: meta(d, "payment"), ReferenceNo: "PAY-1", Amount: "300"},
			wantType:   ledger.TypePayment,
			wantDebit:  "0.00",
			wantCredit: "300.00",
		},
		{
			name:       "Discount",
			record:     ledger.DiscountRecord{RecordMeta: meta(d, "discount"), InvoiceNo: "INV-1", Amount: "25"},
			wantType:   ledger.TypeDiscount,
			wantDebit:  "0.00",
			wantCredit: "25.00",
		},
		{
			name:       "ExtraExpense",
			record:     ledger.ExtraExpenseRecord{RecordMeta: meta(d, "delivery"), InvoiceNo: "INV-1", Amount: "40"},
			wantType:   ledger.TypeExpense,
			wantDebit:  "40.00",
			wantCredit: "0.00",
		},
		{
			name:       "UnmappedDebitIsOther",
			record:     ledger.UnmappedRecord{RecordMeta: meta(d, "misc"), DocumentType: "Adjustment", ReferenceNo: "ADJ-1", Debit: "10"},
			wantType:   ledger.TypeOther,
			wantDebit:  "10.00",
			wantCredit: "0.00",
		},
		{
			name:       "UnmappedKnownLabel",
			record:     ledger.UnmappedRecord{RecordMeta: meta(d, "job"), DocumentType: "Job", ReferenceNo: "JOB-1", Credit: "15"},
			wantType:   ledger.TypeJob,
			wantDebit:  "0.00",
			wantCredit: "15.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs, warnings := ledger.Normalize([]ledger.RawRecord{tt.record})
			require.Empty(t, warnings)
			require.Len(t, txs, 1)

			assert.Equal(t, tt.wantType, txs[0].DocumentType)
			assertAmount(t, tt.wantDebit, txs[0].Debit)
			assertAmount(t, tt.wantCredit, txs[0].Credit)
		})
	}
}

func TestNormalize_ExtraExpenseIncreasesBalance(t *testing.T) {
	from, to := date(2024, 1, 1), date(2024, 1, 31)

	records := []ledger.RawRecord{
		ledger.SaleRecord{RecordMeta: meta(date(2024, 1, 5), "sale"), InvoiceNo: "INV-7", Total: "1000"},
		ledger.ExtraExpenseRecord{RecordMeta: meta(date(2024, 1, 6), "installation"), InvoiceNo: "INV-7", Amount: "750"},
	}

	txs, warnings := ledger.Normalize(records)
	require.Empty(t, warnings)

	expense := txs[1]
	assert.True(t, expense.Debit.Equal(dec("750")), "extra expense must be a debit")
	assert.True(t, expense.Credit.IsZero(), "extra expense must never be a credit")
	assert.Equal(t, []string{"INV-7"}, expense.LinkedInvoices)

	opening := ledger.OpeningBalanceEntry(dec("0"), from)
	seq := ledger.Sequence(txs, &opening, from, to)
	require.Len(t, seq, 3)
	assertAmount(t, "750.00", seq[2].RunningBalance.Sub(seq[1].RunningBalance))
}

func TestNormalize_MalformedRecordsAreWarnings(t *testing.T) {
	d := date(2024, 2, 1)
	good := ledger.SaleRecord{RecordMeta: meta(d, "good"), InvoiceNo: "INV-OK", Total: "10"}

	records := []ledger.RawRecord{
		ledger.SaleRecord{RecordMeta: meta(d, "missing"), InvoiceNo: "INV-A"},
		good,
		ledger.PaymentRecord{RecordMeta: meta(d, "negative"), ReferenceNo: "PAY-A", Amount: "-5"},
		ledger.DiscountRecord{RecordMeta: meta(d, "text"), Amount: "ten"},
		ledger.ExtraExpenseRecord{RecordMeta: meta(d, "zero"), Amount: "0.00"},
		ledger.PaymentRecord{RecordMeta: ledger.RecordMeta{Description: "no date"}, Amount: "5"},
		nil,
	}

	txs, warnings := ledger.Normalize(records)

	require.Len(t, txs, 1)
	assert.Equal(t, "INV-OK", txs[0].ReferenceNo)
	require.Len(t, warnings, 6)

	assert.Equal(t, ledger.SourceSale, warnings[0].Source)
	assert.Contains(t, warnings[0].Reason, "missing amount")
	assert.Contains(t, warnings[1].Reason, "negative amount")
	assert.Contains(t, warnings[2].Reason, "non-numeric amount")
	assert.Contains(t, warnings[3].Reason, "zero amount")
	assert.Contains(t, warnings[4].Reason, "missing date")
	assert.Contains(t, warnings[5].Reason, "empty record")
}

func TestNormalize_PointerRecords(t *testing.T) {
	d := date(2024, 2, 1)

	type testCase struct {
		name        string
		record      ledger.RawRecord
		wantDebit   string
		wantCredit  string
		wantWarning string
	}

	tests := []testCase{
		{
			name:      "Sale",
			record:    &ledger.SaleRecord{RecordMeta: meta(d, "sale"), InvoiceNo: "INV-1", Total: "100"},
			wantDebit: "100.00",
		},
		{
			name:       "Payment",
			record:     &ledger.PaymentRecord{RecordMeta: meta(d, "payment"), ReferenceNo: "PAY-1", Amount: "40"},
			wantCredit: "40.00",
		},
		{
			name:       "Discount",
			record:     &ledger.DiscountRecord{RecordMeta: meta(d, "discount"), Amount: "5"},
			wantCredit: "5.00",
		},
		{
			name:      "ExtraExpense",
			record:    &ledger.ExtraExpenseRecord{RecordMeta: meta(d, "extra"), Amount: "7.5"},
			wantDebit: "7.50",
		},
		{
			name:       "Unmapped",
			record:     &ledger.UnmappedRecord{RecordMeta: meta(d, "other"), DocumentType: "Refund", Credit: "3"},
			wantCredit: "3.00",
		},
		{name: "NilSale", record: (*ledger.SaleRecord)(nil), wantWarning: "empty record"},
		{name: "NilPayment", record: (*ledger.PaymentRecord)(nil), wantWarning: "empty record"},
		{name: "NilDiscount", record: (*ledger.DiscountRecord)(nil), wantWarning: "empty record"},
		{name: "NilExtraExpense", record: (*ledger.ExtraExpenseRecord)(nil), wantWarning: "empty record"},
		{name: "NilUnmapped", record: (*ledger.UnmappedRecord)(nil), wantWarning: "empty record"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs, warnings := ledger.Normalize([]ledger.RawRecord{tt.record})

			if tt.wantWarning != "" {
				assert.Empty(t, txs)
				require.Len(t, warnings, 1)
				assert.Equal(t, tt.wantWarning, warnings[0].Reason)
				assert.Equal(t, ledger.RecordMeta{}, ledger.MetaOf(tt.record))

				return
			}

			assert.Empty(t, warnings)
			require.Len(t, txs, 1)
			assert.Equal(t, ledger.MetaOf(tt.record).ID, txs[0].ID)

			if tt.wantDebit != "" {
				assertAmount(t, tt.wantDebit, txs[0].Debit)
			}

			if tt.wantCredit != "" {
				assertAmount(t, tt.wantCredit, txs[0].Credit)
			}
		})
	}
}

func TestNormalize_UnmappedWithoutClassifiableAmount(t *testing.T) {
	d := date(2024, 2, 1)

	records := []ledger.RawRecord{
		ledger.UnmappedRecord{RecordMeta: meta(d, "both"), DocumentType: "Transfer", Debit: "5", Credit: "5"},
		ledger.UnmappedRecord{RecordMeta: meta(d, "neither"), DocumentType: "Memo"},
	}

	txs, warnings := ledger.Normalize(records)

	assert.Empty(t, txs)
	require.Len(t, warnings, 2)

	for _, w := range warnings {
		assert.Equal(t, ledger.SourceUnmapped, w.Source)
		assert.Contains(t, w.Reason, "cannot classify")
	}
}

func TestNormalize_LinksPaymentsToSales(t *testing.T) {
	d := date(2024, 4, 1)

	records := []ledger.RawRecord{
		ledger.SaleRecord{RecordMeta: meta(d, "sale"), InvoiceNo: "INV-9", Total: "900"},
		ledger.PaymentRecord{RecordMeta: meta(d, "first"), ReferenceNo: "PAY-1", InvoiceNo: "INV-9", Amount: "400"},
		ledger.PaymentRecord{RecordMeta: meta(d, "unlinked"), ReferenceNo: "PAY-2", Amount: "50"},
		ledger.PaymentRecord{RecordMeta: meta(d, "second"), ReferenceNo: "PAY-3", InvoiceNo: "INV-9", Amount: "500"},
	}

	txs, warnings := ledger.Normalize(records)
	require.Empty(t, warnings)
	require.Len(t, txs, 4)

	assert.Equal(t, []string{"PAY-1", "PAY-3"}, txs[0].LinkedPayments)
	assert.Equal(t, []string{"INV-9"}, txs[1].LinkedInvoices)
	assert.Empty(t, txs[2].LinkedInvoices)
}

func TestNetChange(t *testing.T) {
	txs := []ledger.Transaction{
		ledger.OpeningBalanceEntry(dec("999"), date(2024, 1, 1)),
		{DocumentType: ledger.TypeSale, Debit: dec("100")},
		{DocumentType: ledger.TypePayment, Credit: dec("30")},
	}

	assertAmount(t, "70.00", ledger.NetChange(txs))
}

func TestParseDocumentType(t *testing.T) {
	tests := []struct {
		in   string
		want ledger.DocumentType
	}{
		{"Sale", ledger.TypeSale},
		{"Studio Sale", ledger.TypeStudioSale},
		{"studio-sale", ledger.TypeStudioSale},
		{" PURCHASE ", ledger.TypePurchase},
		{"expense", ledger.TypeExpense},
		{"Refund", ledger.TypeOther},
		{"", ledger.TypeOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ledger.ParseDocumentType(tt.in), "ParseDocumentType(%q)", tt.in)
	}
}
