// Package memstore keeps accounts in memory. It backs offline builds from
// imported CSV files and the preview endpoint.
package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/arledger/internal/ledger"
)

type Account struct {
	ID             uuid.UUID
	Name           string
	OpeningBalance decimal.Decimal
	Records        []ledger.RawRecord
	Invoices       []ledger.RawInvoice
}

type Store struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*Account
}

func New() *Store {
	return &Store{accounts: make(map[uuid.UUID]*Account)}
}

// Put stores acc, replacing any account with the same ID. A nil ID is
// replaced with a fresh one, which is returned.
func (s *Store) Put(acc Account) uuid.UUID {
	if acc.ID == uuid.Nil {
		acc.ID = uuid.New()
	}

	acc.Records = slices.Clone(acc.Records)
	acc.Invoices = slices.Clone(acc.Invoices)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[acc.ID] = &acc

	return acc.ID
}

func (s *Store) AddRecords(accountID uuid.UUID, records ...ledger.RawRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return ledger.ErrAccountNotFound
	}

	acc.Records = append(acc.Records, records...)

	return nil
}

func (s *Store) AddInvoices(accountID uuid.UUID, invoices ...ledger.RawInvoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return ledger.ErrAccountNotFound
	}

	acc.Invoices = append(acc.Invoices, invoices...)

	return nil
}

// BeginSnapshot copies the account's data so later writes do not leak into
// an in-flight build.
func (s *Store) BeginSnapshot(_ context.Context, accountID uuid.UUID) (ledger.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}

	return &snapshot{
		opening:  acc.OpeningBalance,
		records:  slices.Clone(acc.Records),
		invoices: slices.Clone(acc.Invoices),
	}, nil
}

type snapshot struct {
	opening  decimal.Decimal
	records  []ledger.RawRecord
	invoices []ledger.RawInvoice
}

func (s *snapshot) OpeningBalance(ctx context.Context, asOfExclusive time.Time) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	var prior []ledger.RawRecord

	for _, rec := range s.records {
		d := ledger.MetaOf(rec).Date
		if !d.IsZero() && d.Before(asOfExclusive) {
			prior = append(prior, rec)
		}
	}

	txs, _ := ledger.Normalize(prior)

	return s.opening.Add(ledger.NetChange(txs)), nil
}

// TransactionsInRange also returns records without a date so the normalizer
// can report them.
func (s *snapshot) TransactionsInRange(ctx context.Context, from, to time.Time) ([]ledger.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []ledger.RawRecord

	for _, rec := range s.records {
		d := ledger.MetaOf(rec).Date
		if d.IsZero() || inRange(d, from, to) {
			out = append(out, rec)
		}
	}

	return out, nil
}

func (s *snapshot) InvoicesInRange(ctx context.Context, from, to time.Time) ([]ledger.RawInvoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []ledger.RawInvoice

	for _, inv := range s.invoices {
		if inv.Date.IsZero() || inRange(inv.Date, from, to) {
			out = append(out, inv)
		}
	}

	return out, nil
}

func (s *snapshot) Close() error { return nil }

func inRange(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}
