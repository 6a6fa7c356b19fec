package view

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/arledger/internal/export"
	"github.com/MrJamesThe3rd/arledger/internal/ledger"
	"github.com/MrJamesThe3rd/arledger/internal/ledger/memstore"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func fixClock(t *testing.T, now time.Time) {
	t.Helper()

	prev := clock
	clock = func() time.Time { return now }

	t.Cleanup(func() { clock = prev })
}

func pick(p PeriodPicker, row int) (PeriodPicker, tea.Cmd) {
	for i := 0; i < row; i++ {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	return p.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestPeriodPicker_Presets(t *testing.T) {
	// Wednesday afternoon.
	fixClock(t, time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC))

	type testCase struct {
		name     string
		row      int
		wantFrom time.Time
		wantTo   time.Time
	}

	tests := []testCase{
		{name: "MonthToDate", row: 0, wantFrom: date(2024, 3, 1), wantTo: date(2024, 3, 13)},
		{name: "LastMonth", row: 1, wantFrom: date(2024, 2, 1), wantTo: date(2024, 2, 29)},
		{name: "QuarterToDate", row: 2, wantFrom: date(2024, 1, 1), wantTo: date(2024, 3, 13)},
		{name: "LastQuarter", row: 3, wantFrom: date(2023, 10, 1), wantTo: date(2023, 12, 31)},
		{name: "YearToDate", row: 4, wantFrom: date(2024, 1, 1), wantTo: date(2024, 3, 13)},
		{name: "LastYear", row: 5, wantFrom: date(2023, 1, 1), wantTo: date(2023, 12, 31)},
	}

	require.Len(t, periods, len(tests))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cmd := pick(NewPeriodPicker(), tt.row)
			require.NotNil(t, cmd)

			assert.Equal(t, PeriodSelectedMsg{From: tt.wantFrom, To: tt.wantTo}, cmd())
		})
	}
}

func TestPeriodPicker_CursorStaysInBounds(t *testing.T) {
	p := NewPeriodPicker()

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, p.cursor)

	for i := 0; i < len(periods)+3; i++ {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	assert.Equal(t, len(periods), p.cursor)
}

func TestPeriodPicker_CustomRange(t *testing.T) {
	p, _ := pick(NewPeriodPicker(), len(periods))
	require.False(t, p.IsSelecting())

	type testCase struct {
		name    string
		input   string
		wantErr string
		want    PeriodSelectedMsg
	}

	tests := []testCase{
		{name: "Inverted", input: "2024-02-01..2024-01-01", wantErr: "after"},
		{name: "NoSeparator", input: "2024-02-01", wantErr: "FROM..TO"},
		{name: "BadStart", input: "2024-13-01..2024-12-31", wantErr: "invalid start date"},
		{name: "BadEnd", input: "2024-01-01..soon", wantErr: "invalid end date"},
		{
			name:  "Valid",
			input: " 2024-02-01 .. 2024-02-29 ",
			want:  PeriodSelectedMsg{From: date(2024, 2, 1), To: date(2024, 2, 29)},
		},
		{
			name:  "SingleDay",
			input: "2024-02-01..2024-02-01",
			want:  PeriodSelectedMsg{From: date(2024, 2, 1), To: date(2024, 2, 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.input.SetValue(tt.input)

			got, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})

			if tt.wantErr != "" {
				assert.Nil(t, cmd)
				assert.ErrorContains(t, got.err, tt.wantErr)

				return
			}

			require.NoError(t, got.err)
			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, cmd())
		})
	}
}

func TestPeriodPicker_EscLeavesCustomRange(t *testing.T) {
	p, _ := pick(NewPeriodPicker(), len(periods))
	p.input.SetValue("bad")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Error(t, p.err)

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.True(t, p.IsSelecting())
	assert.NoError(t, p.err)

	p.Reset()
	assert.Equal(t, 0, p.cursor)
	assert.Empty(t, p.input.Value())
}

func newAccount(t *testing.T) Account {
	t.Helper()

	store := memstore.New()
	id := store.Put(memstore.Account{
		Name:           "Studio",
		OpeningBalance: decimal.NewFromInt(100),
		Records: []ledger.RawRecord{
			ledger.SaleRecord{RecordMeta: ledger.RecordMeta{ID: uuid.New(), Date: date(2024, 1, 2), Description: "Album"}, InvoiceNo: "INV-1", Total: "500"},
			ledger.PaymentRecord{RecordMeta: ledger.RecordMeta{ID: uuid.New(), Date: date(2024, 1, 3)}, ReferenceNo: "PAY-1", InvoiceNo: "INV-1", Amount: "200"},
			ledger.SaleRecord{RecordMeta: ledger.RecordMeta{ID: uuid.New(), Date: date(2024, 1, 4), Description: "Prints"}, InvoiceNo: "INV-2", Total: "50"},
		},
		Invoices: []ledger.RawInvoice{
			{ID: uuid.New(), InvoiceNo: "INV-1", Date: date(2024, 1, 2), Total: "500", Paid: "200"},
			{ID: uuid.New(), InvoiceNo: "INV-2", Date: date(2024, 1, 4), Total: "50"},
		},
	})

	svc := ledger.NewService(store, nil)

	return Account{ID: id, Name: "Studio", Ledger: svc, Export: export.NewService(svc)}
}

// update applies msg to m and drops the returned command.
func update[M tea.Model](m M, msg tea.Msg) M {
	next, _ := m.Update(msg)
	return next.(M)
}

func loadJanuary(m LedgerModel) LedgerModel {
	from, to := date(2024, 1, 1), date(2024, 1, 31)

	m = update(m, PeriodSelectedMsg{From: from, To: to})

	return update(m, loadLedger(m.account, from, to)())
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLedgerModel(t *testing.T) {
	m := loadJanuary(NewLedgerModel(newAccount(t)))

	require.NoError(t, m.err)
	require.Len(t, m.Rows(), 4)
	assert.Equal(t, ledger.OpeningBalanceRef, m.Rows()[0].ReferenceNo)
	assert.Contains(t, m.View(), "450.00")

	// Type filter: sale.
	m = update(m, key("t"))
	assert.Equal(t, ledger.TypeSale, m.Query().Type)
	require.Len(t, m.Rows(), 3)

	// Sort by date, then flip to descending.
	m = update(m, key("s"))
	m = update(m, key("o"))
	assert.Equal(t, ledger.Query{Type: ledger.TypeSale, Sort: ledger.SortDate, Order: ledger.OrderDesc}, m.Query())
	assert.Equal(t, "INV-2", m.Rows()[1].ReferenceNo)
	assert.True(t, m.Rows()[0].IsOpening())
}

func TestLedgerModel_Search(t *testing.T) {
	m := loadJanuary(NewLedgerModel(newAccount(t)))

	m = update(m, key("/"))
	require.Equal(t, ledgerStateSearch, m.state)

	m.search.SetValue("prints")
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, m.Rows(), 2)
	assert.Equal(t, "INV-2", m.Rows()[1].ReferenceNo)

	m = update(m, key("/"))
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.Rows(), 4)
}

func TestLedgerModel_Error(t *testing.T) {
	account := newAccount(t)
	account.ID = uuid.New()

	m := loadJanuary(NewLedgerModel(account))

	assert.ErrorIs(t, m.err, ledger.ErrAccountNotFound)
	assert.Contains(t, m.View(), "Error")
}

func TestAgingModel(t *testing.T) {
	fixClock(t, date(2024, 3, 15))

	m := NewAgingModel(newAccount(t))
	m = update(m, PeriodSelectedMsg{From: date(2024, 1, 1), To: date(2024, 1, 31)})
	require.Equal(t, agingStateAsOf, m.state)
	assert.Equal(t, "2024-03-15", m.asOf)

	m.state = agingStateReport
	m = update(m, loadLedger(m.account, m.from, m.to)())

	report := m.Report()
	require.NotNil(t, report)
	assert.Equal(t, "350.00", ledger.FormatAmount(report.TotalOutstanding))

	b, ok := report.Bucket(ledger.Bucket61To90)
	require.True(t, ok)
	assert.Equal(t, 2, b.Count)
	assert.Contains(t, m.View(), "Aging as of 2024-03-15")
}
