package ledger_test

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/arledger/internal/export"
	"github.com/MrJamesThe3rd/arledger/internal/http/api"
	ledgerhttp "github.com/MrJamesThe3rd/arledger/internal/http/ledger"
	"github.com/MrJamesThe3rd/arledger/internal/ledger"
	"github.com/MrJamesThe3rd/arledger/internal/ledger/memstore"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func newRouter(t *testing.T) (http.Handler, uuid.UUID) {
	t.Helper()

	store := memstore.New()
	accountID := store.Put(memstore.Account{
		OpeningBalance: decimal.NewFromInt(1000),
		Records: []ledger.RawRecord{
			ledger.SaleRecord{RecordMeta: ledger.RecordMeta{ID: uuid.New(), Date: date(2024, 1, 1), Description: "Wedding album"}, InvoiceNo: "INV-1", Total: "500"},
			ledger.PaymentRecord{RecordMeta: ledger.RecordMeta{ID: uuid.New(), Date: date(2024, 1, 2), PaymentAccount: "Bank"}, ReferenceNo: "PAY-1", InvoiceNo: "INV-1", Amount: "300"},
			ledger.PaymentRecord{RecordMeta: ledger.RecordMeta{ID: uuid.New(), Date: date(2024, 1, 3)}, ReferenceNo: "PAY-2", Amount: "-5"},
		},
		Invoices: []ledger.RawInvoice{
			{ID: uuid.New(), InvoiceNo: "INV-1", Date: date(2024, 1, 1), Total: "500", Paid: "300"},
		},
	})

	h := ledgerhttp.NewHandler(ledger.NewService(store, zap.NewNop()))

	r := chi.NewRouter()
	r.Route("/accounts/{id}/ledger", h.Routes)

	return r, accountID
}

func TestHandler_Get(t *testing.T) {
	router, accountID := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/accounts/"+accountID.String()+"/ledger?from=2024-01-01&to=2024-01-31", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp api.LedgerResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, accountID, resp.AccountID)
	assert.Equal(t, "1000.00", resp.Summary.OpeningBalance)
	assert.Equal(t, "500.00", resp.Summary.TotalDebit)
	assert.Equal(t, "300.00", resp.Summary.TotalCredit)
	assert.Equal(t, "1200.00", resp.Summary.ClosingBalance)
	assert.Equal(t, 1, resp.Summary.Invoices.PartiallyPaid.Count)

	require.Len(t, resp.Transactions, 3)
	assert.Equal(t, ledger.OpeningBalanceRef, resp.Transactions[0].ReferenceNo)
	assert.Equal(t, []string{"PAY-1"}, resp.Transactions[1].LinkedPayments)
	assert.Equal(t, "1200.00", resp.Transactions[2].RunningBalance)

	require.Len(t, resp.Invoices, 1)
	assert.Equal(t, "200.00", resp.Invoices[0].PendingAmount)

	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, ledger.SourcePayment, resp.Warnings[0].Source)
}

func TestHandler_GetFiltered(t *testing.T) {
	router, accountID := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/accounts/"+accountID.String()+"/ledger?from=2024-01-01&to=2024-01-31&type=payment&sort=date&order=desc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.LedgerResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	require.Len(t, resp.Transactions, 2)
	assert.Equal(t, ledger.OpeningBalanceRef, resp.Transactions[0].ReferenceNo)
	assert.Equal(t, "PAY-1", resp.Transactions[1].ReferenceNo)
	assert.Equal(t, "1200.00", resp.Summary.ClosingBalance)
}

func TestHandler_Errors(t *testing.T) {
	router, accountID := newRouter(t)

	type testCase struct {
		name   string
		path   string
		status int
	}

	tests := []testCase{
		{name: "MissingRange", path: "/accounts/" + accountID.String() + "/ledger", status: http.StatusBadRequest},
		{name: "InvertedRange", path: "/accounts/" + accountID.String() + "/ledger?from=2024-02-01&to=2024-01-01", status: http.StatusBadRequest},
		{name: "BadSort", path: "/accounts/" + accountID.String() + "/ledger?from=2024-01-01&to=2024-01-31&sort=x", status: http.StatusBadRequest},
		{name: "BadAccountID", path: "/accounts/abc/ledger?from=2024-01-01&to=2024-01-31", status: http.StatusBadRequest},
		{name: "UnknownAccount", path: "/accounts/" + uuid.NewString() + "/ledger?from=2024-01-01&to=2024-01-31", status: http.StatusNotFound},
		{name: "ExportUnknownAccount", path: "/accounts/" + uuid.NewString() + "/ledger/export?from=2024-01-01&to=2024-01-31", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandler_Export(t *testing.T) {
	router, accountID := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/accounts/"+accountID.String()+"/ledger/export?from=2024-01-01&to=2024-01-31", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), export.Filename(accountID, date(2024, 1, 1), date(2024, 1, 31)))

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, export.Header, rows[0])
	assert.Equal(t, "PAY-1", rows[3][2])
}
