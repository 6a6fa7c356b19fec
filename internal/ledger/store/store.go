package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/arledger/internal/ledger"
)

// Schema creates the tables read by Store.
//
//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// BeginSnapshot opens a read-only REPEATABLE READ transaction. Every read
// made through the returned snapshot sees the same database state.
func (s *Store) BeginSnapshot(ctx context.Context, accountID uuid.UUID) (ledger.Snapshot, error) {
	dbTx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("beginning snapshot tx: %w", err)
	}

	return &snapshot{tx: dbTx, accountID: accountID}, nil
}

type snapshot struct {
	tx        *sql.Tx
	accountID uuid.UUID
}

func (s *snapshot) Close() error {
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("closing snapshot: %w", err)
	}

	return nil
}

// OpeningBalance is the account's stored opening balance plus the net effect
// of every record dated before asOfExclusive.
func (s *snapshot) OpeningBalance(ctx context.Context, asOfExclusive time.Time) (decimal.Decimal, error) {
	var stored sql.NullString

	err := s.tx.QueryRowContext(ctx,
		`SELECT opening_balance::text FROM accounts WHERE id = $1`, s.accountID,
	).Scan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, ledger.ErrAccountNotFound
		}

		return decimal.Zero, fmt.Errorf("getting account: %w", err)
	}

	base := decimal.Zero

	if stored.Valid && stored.String != "" {
		base, err = decimal.NewFromString(stored.String)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parsing stored opening balance %q: %w", stored.String, err)
		}
	}

	prior, err := s.records(ctx, `r.date < $2`, asOfExclusive)
	if err != nil {
		return decimal.Zero, err
	}

	// Malformed history rows are excluded here the same way they are
	// excluded from an in-range build.
	txs, _ := ledger.Normalize(prior)

	return base.Add(ledger.NetChange(txs)), nil
}

func (s *snapshot) TransactionsInRange(ctx context.Context, from, to time.Time) ([]ledger.RawRecord, error) {
	return s.records(ctx, `r.date >= $2 AND r.date <= $3`, from, to)
}

const recordsQuery = `
	SELECT r.source, r.id, r.date, r.kind, r.reference_no, r.invoice_no,
		r.description, r.payment_account, r.notes, r.amount, r.debit, r.credit
	FROM (
		SELECT 'sale' AS source, id, date, kind, '' AS reference_no, invoice_no,
			description, '' AS payment_account, notes,
			total::text AS amount, NULL::text AS debit, NULL::text AS credit, created_at
		FROM sales WHERE account_id = $1
		UNION ALL
		SELECT 'payment', id, date, '', reference_no, invoice_no,
			description, payment_account, notes,
			amount::text, NULL::text, NULL::text, created_at
		FROM payments WHERE account_id = $1
		UNION ALL
		SELECT 'discount', id, date, '', reference_no, invoice_no,
			description, '', notes,
			amount::text, NULL::text, NULL::text, created_at
		FROM discounts WHERE account_id = $1
		UNION ALL
		SELECT 'extra_expense', id, date, '', reference_no, invoice_no,
			description, '', notes,
			amount::text, NULL::text, NULL::text, created_at
		FROM extra_expenses WHERE account_id = $1
		UNION ALL
		SELECT 'unmapped', id, date, document_type, reference_no, '',
			description, payment_account, notes,
			NULL::text, debit::text, credit::text, created_at
		FROM ledger_entries WHERE account_id = $1
	) r
	WHERE %s
	ORDER BY r.date ASC, r.created_at ASC, r.id ASC`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one row of recordsQuery into the matching raw record
// variant.
func scanRecord(sc scanner) (ledger.RawRecord, error) {
	var (
		source, kind, ref, invoiceNo string
		meta                         ledger.RecordMeta
		amount, debit, credit        sql.NullString
	)

	if err := sc.Scan(
		&source, &meta.ID, &meta.Date, &kind, &ref, &invoiceNo,
		&meta.Description, &meta.PaymentAccount, &meta.Notes,
		&amount, &debit, &credit,
	); err != nil {
		return nil, err
	}

	switch ledger.SourceKind(source) {
	case ledger.SourceSale:
		return ledger.SaleRecord{RecordMeta: meta, Kind: ledger.ParseDocumentType(kind), InvoiceNo: invoiceNo, Total: amount.String}, nil
	case ledger.SourcePayment:
		return ledger.PaymentRecord{RecordMeta: meta, ReferenceNo: ref, InvoiceNo: invoiceNo, Amount: amount.String}, nil
	case ledger.SourceDiscount:
		return ledger.DiscountRecord{RecordMeta: meta, ReferenceNo: ref, InvoiceNo: invoiceNo, Amount: amount.String}, nil
	case ledger.SourceExtraExpense:
		return ledger.ExtraExpenseRecord{RecordMeta: meta, ReferenceNo: ref, InvoiceNo: invoiceNo, Amount: amount.String}, nil
	case ledger.SourceUnmapped:
		return ledger.UnmappedRecord{RecordMeta: meta, DocumentType: kind, ReferenceNo: ref, Debit: debit.String, Credit: credit.String}, nil
	default:
		return nil, fmt.Errorf("unknown record source %q", source)
	}
}

func (s *snapshot) records(ctx context.Context, where string, args ...any) ([]ledger.RawRecord, error) {
	query := fmt.Sprintf(recordsQuery, where)

	rows, err := s.tx.QueryContext(ctx, query, append([]any{s.accountID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var records []ledger.RawRecord

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating record rows: %w", err)
	}

	return records, nil
}

func (s *snapshot) InvoicesInRange(ctx context.Context, from, to time.Time) ([]ledger.RawInvoice, error) {
	query := `
		SELECT id, invoice_no, date, total::text, paid_amount::text, items
		FROM sales
		WHERE account_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC, created_at ASC, id ASC`

	rows, err := s.tx.QueryContext(ctx, query, s.accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []ledger.RawInvoice

	for rows.Next() {
		var (
			inv         ledger.RawInvoice
			total, paid sql.NullString
			items       []byte
		)

		if err := rows.Scan(&inv.ID, &inv.InvoiceNo, &inv.Date, &total, &paid, &items); err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		inv.Total = total.String
		inv.Paid = paid.String

		if len(items) > 0 {
			inv.Items = json.RawMessage(items)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invoices, nil
}
