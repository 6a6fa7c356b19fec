package ledger

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Aging bucket labels, in report order.
const (
	Bucket0To30  = "0-30"
	Bucket31To60 = "31-60"
	Bucket61To90 = "61-90"
	Bucket90Plus = "90+"
)

var bucketLabels = [4]string{Bucket0To30, Bucket31To60, Bucket61To90, Bucket90Plus}

// AgingEntry is one outstanding invoice in a bucket.
type AgingEntry struct {
	Invoice  Invoice
	DaysPast int
}

// AgingBucket groups outstanding invoices by age.
type AgingBucket struct {
	Label   string
	Count   int
	Amount  decimal.Decimal
	Entries []AgingEntry
}

// AgingReport is the receivables aging for one reference date.
type AgingReport struct {
	AsOf             time.Time
	Buckets          [4]AgingBucket
	TotalOutstanding decimal.Decimal
	HighRiskCount    int
	HighRiskAmount   decimal.Decimal
	MediumRiskCount  int
	MediumRiskAmount decimal.Decimal
}

// Bucket returns the bucket with the given label.
func (r AgingReport) Bucket(label string) (AgingBucket, bool) {
	for _, b := range r.Buckets {
		if b.Label == label {
			return b, true
		}
	}

	return AgingBucket{}, false
}

// DaysPast counts whole calendar days from invoiceDate to asOf, both taken at
// midnight. Future-dated invoices yield a negative value.
func DaysPast(invoiceDate, asOf time.Time) int {
	return int(midnight(asOf).Sub(midnight(invoiceDate)).Hours() / 24)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func bucketIndex(days int) int {
	switch {
	case days <= 30:
		return 0
	case days <= 60:
		return 1
	case days <= 90:
		return 2
	default:
		return 3
	}
}

// ClassifyAging buckets every invoice with an outstanding amount by its age
// relative to asOf. The caller supplies asOf; the clock is never read here.
//
// An invoice counts as outstanding when its PendingAmount exceeds Epsilon.
// DeriveInvoice already snaps pending amounts within Epsilon to zero; an
// Invoice built by hand with a pending residue of at most 0.005 is left out,
// so TotalOutstanding can differ from its raw pending sum by that residue.
func ClassifyAging(invoices []Invoice, asOf time.Time) AgingReport {
	report := AgingReport{
		AsOf:             asOf,
		TotalOutstanding: decimal.Zero,
		HighRiskAmount:   decimal.Zero,
		MediumRiskAmount: decimal.Zero,
	}

	for i, label := range bucketLabels {
		report.Buckets[i] = AgingBucket{Label: label, Amount: decimal.Zero}
	}

	for _, inv := range invoices {
		if inv.PendingAmount.LessThanOrEqual(Epsilon) {
			continue
		}

		days := DaysPast(inv.Date, asOf)
		b := &report.Buckets[bucketIndex(days)]
		b.Count++
		b.Amount = b.Amount.Add(inv.PendingAmount)
		b.Entries = append(b.Entries, AgingEntry{Invoice: inv, DaysPast: days})
	}

	for i := range report.Buckets {
		b := &report.Buckets[i]
		slices.SortStableFunc(b.Entries, func(x, y AgingEntry) int {
			return cmp.Compare(y.DaysPast, x.DaysPast)
		})

		report.TotalOutstanding = report.TotalOutstanding.Add(b.Amount)
	}

	report.MediumRiskCount = report.Buckets[2].Count
	report.MediumRiskAmount = report.Buckets[2].Amount
	report.HighRiskCount = report.Buckets[3].Count
	report.HighRiskAmount = report.Buckets[3].Amount

	return report
}
