package ledger

import (
	"fmt"
	"slices"
	"strings"
)

// SortField selects the column a ledger view is sorted by.
type SortField string

const (
	SortNone      SortField = ""
	SortDate      SortField = "date"
	SortReference SortField = "reference"
	SortType      SortField = "type"
	SortDebit     SortField = "debit"
	SortCredit    SortField = "credit"
	SortBalance   SortField = "balance"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Query is an immutable filter/sort request over a sequenced ledger.
// Zero values mean: no search, every type, keep chronological order.
type Query struct {
	Search string
	Type   DocumentType
	Sort   SortField
	Order  SortOrder
}

func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortNone, SortDate, SortReference, SortType, SortDebit, SortCredit, SortBalance:
		return f, nil
	}

	return SortNone, fmt.Errorf("%w: unknown sort field %q", ErrInvalidQuery, s)
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OrderAsc, nil
	case OrderAsc, OrderDesc:
		return o, nil
	}

	return OrderAsc, fmt.Errorf("%w: unknown sort order %q", ErrInvalidQuery, s)
}

// Apply returns a new view of txs filtered and sorted by q. The opening line
// is always first, whether or not it matches, and running balances are
// carried over unchanged.
func Apply(txs []Transaction, q Query) []Transaction {
	var (
		opening *Transaction
		rest    = make([]Transaction, 0, len(txs))
	)

	needle := strings.ToLower(strings.TrimSpace(q.Search))

	for i := range txs {
		if txs[i].IsOpening() {
			if opening == nil {
				opening = &txs[i]
			}

			continue
		}

		if q.Type != "" && txs[i].DocumentType != q.Type {
			continue
		}

		if needle != "" && !matches(txs[i], needle) {
			continue
		}

		rest = append(rest, txs[i])
	}

	if cmpFn := comparator(q.Sort); cmpFn != nil {
		if q.Order == OrderDesc {
			slices.SortStableFunc(rest, func(a, b Transaction) int { return cmpFn(b, a) })
		} else {
			slices.SortStableFunc(rest, cmpFn)
		}
	}

	if opening == nil {
		return rest
	}

	return append([]Transaction{*opening}, rest...)
}

func matches(tx Transaction, needle string) bool {
	for _, field := range []string{tx.ReferenceNo, tx.Description, tx.PaymentAccount, tx.Notes} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}

	return false
}

func comparator(f SortField) func(a, b Transaction) int {
	switch f {
	case SortDate:
		return func(a, b Transaction) int { return a.Date.Compare(b.Date) }
	case SortReference:
		return func(a, b Transaction) int { return strings.Compare(a.ReferenceNo, b.ReferenceNo) }
	case SortType:
		return func(a, b Transaction) int { return strings.Compare(string(a.DocumentType), string(b.DocumentType)) }
	case SortDebit:
		return func(a, b Transaction) int { return a.Debit.Cmp(b.Debit) }
	case SortCredit:
		return func(a, b Transaction) int { return a.Credit.Cmp(b.Credit) }
	case SortBalance:
		return func(a, b Transaction) int { return a.RunningBalance.Cmp(b.RunningBalance) }
	}

	return nil
}
