package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/arledger/internal/ledger"
)

// Header is the column row of a CSV ledger export.
var Header = []string{
	"Date", "Type", "Reference", "Description", "Payment Account",
	"Debit", "Credit", "Balance", "Notes",
}

// Request selects the ledger and view to export.
type Request struct {
	AccountID uuid.UUID
	From      time.Time
	To        time.Time
	Query     ledger.Query
}

// Service exports ledgers as CSV files and text statements.
type Service struct {
	ledger *ledger.Service
}

func NewService(ledgerService *ledger.Service) *Service {
	return &Service{ledger: ledgerService}
}

// Export builds the requested ledger and writes its filtered view to w.
func (s *Service) Export(ctx context.Context, req Request, w io.Writer) (*ledger.Result, error) {
	result, err := s.ledger.BuildLedger(ctx, req.AccountID, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("building ledger: %w", err)
	}

	if err := WriteCSV(w, s.ledger.QueryLedger(result, req.Query)); err != nil {
		return nil, err
	}

	return result, nil
}

// ExportFile is Export into a new file under outputDir. It returns the
// file's path. No file is left behind when the export fails.
func (s *Service) ExportFile(ctx context.Context, req Request, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, Filename(req.AccountID, req.From, req.To))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if _, err := s.Export(ctx, req, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)

		return "", err
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)

		return "", fmt.Errorf("closing file: %w", err)
	}

	return path, nil
}

// Filename names an export: ledger_<account>_<from>_<to>.csv.
func Filename(accountID uuid.UUID, from, to time.Time) string {
	short := strings.SplitN(accountID.String(), "-", 2)[0]

	return fmt.Sprintf("ledger_%s_%s_%s.csv", short, from.Format("20060102"), to.Format("20060102"))
}

// WriteCSV writes txs in their given order. Zero debit and credit cells are
// left blank.
func WriteCSV(w io.Writer, txs []ledger.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		row := []string{
			tx.Date.Format(time.DateOnly),
			string(tx.DocumentType),
			tx.ReferenceNo,
			tx.Description,
			tx.PaymentAccount,
			cell(tx.Debit),
			cell(tx.Credit),
			ledger.FormatAmount(tx.RunningBalance),
			tx.Notes,
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %s: %w", tx.ReferenceNo, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

func cell(d decimal.Decimal) string {
	if ledger.NearZero(d) {
		return ""
	}

	return ledger.FormatAmount(d)
}

// GenerateStatement renders a plain-text account statement: the summary,
// one line per transaction and, when given, the aging buckets.
func GenerateStatement(result *ledger.Result, aging *ledger.AgingReport) string {
	var sb strings.Builder

	s := result.Summary

	fmt.Fprintf(&sb, "Statement %s to %s\n", result.From.Format(time.DateOnly), result.To.Format(time.DateOnly))
	fmt.Fprintf(&sb, "Opening balance: %s\n", ledger.FormatAmount(s.OpeningBalance))
	fmt.Fprintf(&sb, "Total debit:     %s\n", ledger.FormatAmount(s.TotalDebit))
	fmt.Fprintf(&sb, "Total credit:    %s\n", ledger.FormatAmount(s.TotalCredit))
	fmt.Fprintf(&sb, "Closing balance: %s\n\n", ledger.FormatAmount(s.ClosingBalance))

	for _, tx := range result.Transactions {
		if tx.IsOpening() {
			continue
		}

		amount := "+" + ledger.FormatAmount(tx.Debit)
		if tx.Credit.IsPositive() {
			amount = "-" + ledger.FormatAmount(tx.Credit)
		}

		desc := tx.Description
		if desc == "" {
			desc = string(tx.DocumentType)
		}

		fmt.Fprintf(&sb, "* %s | %s | %s | %s | %s\n",
			tx.Date.Format(time.DateOnly), tx.ReferenceNo, desc, amount, ledger.FormatAmount(tx.RunningBalance))
	}

	inv := s.Invoices
	fmt.Fprintf(&sb, "\nInvoices: %d (%d paid, %d partial, %d unpaid), pending %s\n",
		inv.Count, inv.FullyPaid.Count, inv.PartiallyPaid.Count, inv.Unpaid.Count, ledger.FormatAmount(inv.PendingAmount))

	if aging == nil {
		return sb.String()
	}

	fmt.Fprintf(&sb, "\nAging as of %s\n", aging.AsOf.Format(time.DateOnly))

	for _, b := range aging.Buckets {
		fmt.Fprintf(&sb, "  %-6s %3d  %s\n", b.Label, b.Count, ledger.FormatAmount(b.Amount))
	}

	fmt.Fprintf(&sb, "  Total outstanding: %s\n", ledger.FormatAmount(aging.TotalOutstanding))

	if aging.HighRiskCount > 0 {
		fmt.Fprintf(&sb, "  High risk (90+): %d invoices, %s\n", aging.HighRiskCount, ledger.FormatAmount(aging.HighRiskAmount))
	}

	return sb.String()
}
