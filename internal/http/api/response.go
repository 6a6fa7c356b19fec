package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/arledger/internal/ledger"
	"github.com/MrJamesThe3rd/arledger/internal/logger"
)

type TransactionResponse struct {
	ID             uuid.UUID           `json:"id"`
	Date           string              `json:"date"`
	DocumentType   ledger.DocumentType `json:"document_type"`
	ReferenceNo    string              `json:"reference_no"`
	Description    string              `json:"description,omitempty"`
	PaymentAccount string              `json:"payment_account,omitempty"`
	Debit          string              `json:"debit"`
	Credit         string              `json:"credit"`
	RunningBalance string              `json:"running_balance"`
	Notes          string              `json:"notes,omitempty"`
	LinkedInvoices []string            `json:"linked_invoices,omitempty"`
	LinkedPayments []string            `json:"linked_payments,omitempty"`
}

type InvoiceResponse struct {
	ID            uuid.UUID            `json:"id"`
	InvoiceNo     string               `json:"invoice_no"`
	Date          string               `json:"date"`
	InvoiceTotal  string               `json:"invoice_total"`
	PaidAmount    string               `json:"paid_amount"`
	PendingAmount string               `json:"pending_amount"`
	Status        ledger.InvoiceStatus `json:"status"`
	Items         json.RawMessage      `json:"items,omitempty"`
}

type StatusTotalsResponse struct {
	Count   int    `json:"count"`
	Amount  string `json:"amount"`
	Pending string `json:"pending"`
}

type InvoiceStatsResponse struct {
	Count         int                  `json:"count"`
	TotalAmount   string               `json:"total_amount"`
	PaidAmount    string               `json:"paid_amount"`
	PendingAmount string               `json:"pending_amount"`
	FullyPaid     StatusTotalsResponse `json:"fully_paid"`
	PartiallyPaid StatusTotalsResponse `json:"partially_paid"`
	Unpaid        StatusTotalsResponse `json:"unpaid"`
}

type SummaryResponse struct {
	OpeningBalance   string               `json:"opening_balance"`
	TotalDebit       string               `json:"total_debit"`
	TotalCredit      string               `json:"total_credit"`
	ClosingBalance   string               `json:"closing_balance"`
	TransactionCount int                  `json:"transaction_count"`
	Invoices         InvoiceStatsResponse `json:"invoices"`
}

type WarningResponse struct {
	RecordID string            `json:"record_id,omitempty"`
	Source   ledger.SourceKind `json:"source"`
	Reason   string            `json:"reason"`
}

// LedgerResponse carries the summary of the whole ledger and the requested
// view of its transactions.
type LedgerResponse struct {
	AccountID    uuid.UUID             `json:"account_id"`
	From         string                `json:"from"`
	To           string                `json:"to"`
	Summary      SummaryResponse       `json:"summary"`
	Transactions []TransactionResponse `json:"transactions"`
	Invoices     []InvoiceResponse     `json:"invoices"`
	Warnings     []WarningResponse     `json:"warnings"`
}

type AgingEntryResponse struct {
	InvoiceNo     string `json:"invoice_no"`
	Date          string `json:"date"`
	PendingAmount string `json:"pending_amount"`
	DaysPast      int    `json:"days_past"`
}

type AgingBucketResponse struct {
	Label    string               `json:"label"`
	Count    int                  `json:"count"`
	Amount   string               `json:"amount"`
	Invoices []AgingEntryResponse `json:"invoices"`
}

type RiskResponse struct {
	Count  int    `json:"count"`
	Amount string `json:"amount"`
}

type AgingResponse struct {
	AsOf             string                `json:"as_of"`
	Buckets          []AgingBucketResponse `json:"buckets"`
	TotalOutstanding string                `json:"total_outstanding"`
	HighRisk         RiskResponse          `json:"high_risk"`
	MediumRisk       RiskResponse          `json:"medium_risk"`
}

func day(t time.Time) string {
	return t.Format(time.DateOnly)
}

func ToTransaction(tx ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             tx.ID,
		Date:           day(tx.Date),
		DocumentType:   tx.DocumentType,
		ReferenceNo:    tx.ReferenceNo,
		Description:    tx.Description,
		PaymentAccount: tx.PaymentAccount,
		Debit:          ledger.FormatAmount(tx.Debit),
		Credit:         ledger.FormatAmount(tx.Credit),
		RunningBalance: ledger.FormatAmount(tx.RunningBalance),
		Notes:          tx.Notes,
		LinkedInvoices: tx.LinkedInvoices,
		LinkedPayments: tx.LinkedPayments,
	}
}

func ToInvoice(inv ledger.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNo:     inv.InvoiceNo,
		Date:          day(inv.Date),
		InvoiceTotal:  ledger.FormatAmount(inv.InvoiceTotal),
		PaidAmount:    ledger.FormatAmount(inv.PaidAmount),
		PendingAmount: ledger.FormatAmount(inv.PendingAmount),
		Status:        inv.Status,
		Items:         inv.Items,
	}
}

func toStatusTotals(st ledger.StatusTotals) StatusTotalsResponse {
	return StatusTotalsResponse{
		Count:   st.Count,
		Amount:  ledger.FormatAmount(st.Amount),
		Pending: ledger.FormatAmount(st.Pending),
	}
}

func ToSummary(s ledger.LedgerSummary) SummaryResponse {
	return SummaryResponse{
		OpeningBalance:   ledger.FormatAmount(s.OpeningBalance),
		TotalDebit:       ledger.FormatAmount(s.TotalDebit),
		TotalCredit:      ledger.FormatAmount(s.TotalCredit),
		ClosingBalance:   ledger.FormatAmount(s.ClosingBalance),
		TransactionCount: s.TransactionCount,
		Invoices: InvoiceStatsResponse{
			Count:         s.Invoices.Count,
			TotalAmount:   ledger.FormatAmount(s.Invoices.TotalAmount),
			PaidAmount:    ledger.FormatAmount(s.Invoices.PaidAmount),
			PendingAmount: ledger.FormatAmount(s.Invoices.PendingAmount),
			FullyPaid:     toStatusTotals(s.Invoices.FullyPaid),
			PartiallyPaid: toStatusTotals(s.Invoices.PartiallyPaid),
			Unpaid:        toStatusTotals(s.Invoices.Unpaid),
		},
	}
}

// ToLedger renders result with view as its transaction list.
func ToLedger(result *ledger.Result, view []ledger.Transaction) LedgerResponse {
	resp := LedgerResponse{
		AccountID:    result.AccountID,
		From:         day(result.From),
		To:           day(result.To),
		Summary:      ToSummary(result.Summary),
		Transactions: make([]TransactionResponse, 0, len(view)),
		Invoices:     make([]InvoiceResponse, 0, len(result.Invoices)),
		Warnings:     make([]WarningResponse, 0, len(result.Warnings)),
	}

	for _, tx := range view {
		resp.Transactions = append(resp.Transactions, ToTransaction(tx))
	}

	for _, inv := range result.Invoices {
		resp.Invoices = append(resp.Invoices, ToInvoice(inv))
	}

	for _, w := range result.Warnings {
		resp.Warnings = append(resp.Warnings, WarningResponse{RecordID: w.RecordID, Source: w.Source, Reason: w.Reason})
	}

	return resp
}

func ToAging(report ledger.AgingReport) AgingResponse {
	resp := AgingResponse{
		AsOf:             day(report.AsOf),
		Buckets:          make([]AgingBucketResponse, 0, len(report.Buckets)),
		TotalOutstanding: ledger.FormatAmount(report.TotalOutstanding),
		HighRisk:         RiskResponse{Count: report.HighRiskCount, Amount: ledger.FormatAmount(report.HighRiskAmount)},
		MediumRisk:       RiskResponse{Count: report.MediumRiskCount, Amount: ledger.FormatAmount(report.MediumRiskAmount)},
	}

	for _, b := range report.Buckets {
		bucket := AgingBucketResponse{
			Label:    b.Label,
			Count:    b.Count,
			Amount:   ledger.FormatAmount(b.Amount),
			Invoices: make([]AgingEntryResponse, 0, len(b.Entries)),
		}

		for _, e := range b.Entries {
			bucket.Invoices = append(bucket.Invoices, AgingEntryResponse{
				InvoiceNo:     e.Invoice.InvoiceNo,
				Date:          day(e.Invoice.Date),
				PendingAmount: ledger.FormatAmount(e.Invoice.PendingAmount),
				DaysPast:      e.DaysPast,
			})
		}

		resp.Buckets = append(resp.Buckets, bucket)
	}

	return resp
}

// JSON writes v with status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response", zap.Error(err))
	}
}
