package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	BeginSnapshot(ctx context.Context, accountID uuid.UUID) (Snapshot, error)
}

// Snapshot reads one account's data as of a single consistent instant. The
// opening balance and the in-range rows of one ledger build must come from
// the same Snapshot.
type Snapshot interface {
	OpeningBalance(ctx context.Context, asOfExclusive time.Time) (decimal.Decimal, error)
	TransactionsInRange(ctx context.Context, from, to time.Time) ([]RawRecord, error)
	InvoicesInRange(ctx context.Context, from, to time.Time) ([]RawInvoice, error)
	Close() error
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{repo: repo, logger: logger.Named("ledger")}
}

// BuildLedger assembles the ledger of accountID between from and to,
// inclusive.
func (s *Service) BuildLedger(ctx context.Context, accountID uuid.UUID, from, to time.Time) (*Result, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: from %s is after to %s", ErrInvalidRange,
			from.Format(time.DateOnly), to.Format(time.DateOnly))
	}

	snap, err := s.repo.BeginSnapshot(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer snap.Close()

	openingBalance, err := snap.OpeningBalance(ctx, from)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", ErrOpeningBalanceUnavailable, err)
	}

	records, err := snap.TransactionsInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetching transactions: %w", err)
	}

	rawInvoices, err := snap.InvoicesInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetching invoices: %w", err)
	}

	txs, warnings := Normalize(records)
	invoices, invoiceWarnings := DeriveInvoices(rawInvoices)
	warnings = append(warnings, invoiceWarnings...)

	opening := OpeningBalanceEntry(openingBalance, from)
	sequenced := Sequence(txs, &opening, from, to)

	result := &Result{
		AccountID:    accountID,
		From:         from,
		To:           to,
		Summary:      Summarize(sequenced, invoices),
		Transactions: sequenced,
		Invoices:     invoices,
		Warnings:     warnings,
	}

	log := s.logger.With(zap.Stringer("account_id", accountID))
	for _, w := range warnings {
		log.Warn("record excluded from ledger",
			zap.String("record_id", w.RecordID),
			zap.String("source", string(w.Source)),
			zap.String("reason", w.Reason),
		)
	}

	log.Debug("ledger built",
		zap.Int("transactions", result.Summary.TransactionCount),
		zap.Int("invoices", len(invoices)),
		zap.String("closing_balance", FormatAmount(result.Summary.ClosingBalance)),
	)

	return result, nil
}

// BuildAgingReport classifies the outstanding invoices as of asOf.
func (s *Service) BuildAgingReport(invoices []Invoice, asOf time.Time) AgingReport {
	return ClassifyAging(invoices, asOf)
}

// QueryLedger returns a filtered and sorted view of a built ledger.
func (s *Service) QueryLedger(result *Result, q Query) []Transaction {
	if result == nil {
		return nil
	}

	return Apply(result.Transactions, q)
}
