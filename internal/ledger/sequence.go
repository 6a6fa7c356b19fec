package ledger

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpeningBalanceRef is the reference number of the synthetic opening line.
const OpeningBalanceRef = "OPENING-BALANCE"

// OpeningBalanceEntry builds the synthetic line that seeds the running
// balance. It carries no debit or credit.
func OpeningBalanceEntry(balance decimal.Decimal, from time.Time) Transaction {
	return Transaction{
		ID:             uuid.Nil,
		Date:           from,
		DocumentType:   TypeOpeningBalance,
		ReferenceNo:    OpeningBalanceRef,
		Description:    "Opening balance",
		Debit:          decimal.Zero,
		Credit:         decimal.Zero,
		RunningBalance: balance,
	}
}

// Sequence orders the transactions dated within [from, to] chronologically
// and assigns running balances seeded by opening (zero when nil). Ties on
// date keep their input order. The opening line, if any, is placed first.
//
// This is the only place running balances are computed.
func Sequence(txs []Transaction, opening *Transaction, from, to time.Time) []Transaction {
	inRange := make([]Transaction, 0, len(txs))

	for _, tx := range txs {
		if tx.IsOpening() {
			continue
		}

		if tx.Date.Before(from) || tx.Date.After(to) {
			continue
		}

		inRange = append(inRange, tx)
	}

	slices.SortStableFunc(inRange, func(a, b Transaction) int {
		return a.Date.Compare(b.Date)
	})

	out := make([]Transaction, 0, len(inRange)+1)
	balance := decimal.Zero

	if opening != nil {
		seed := *opening
		balance = seed.RunningBalance
		out = append(out, seed)
	}

	for _, tx := range inRange {
		balance = balance.Add(tx.Debit).Sub(tx.Credit)
		tx.RunningBalance = balance
		out = append(out, tx)
	}

	return out
}
