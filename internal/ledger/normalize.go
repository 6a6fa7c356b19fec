package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	errNilRecord     = errors.New("empty record")
	errMissingDate   = errors.New("missing date")
	errUnclassified  = errors.New("cannot classify debit/credit")
	errUnknownRecord = errors.New("unknown record shape")
)

// posting is the signed effect of one raw record on the receivable.
type posting struct {
	docType        DocumentType
	referenceNo    string
	debit          decimal.Decimal
	credit         decimal.Decimal
	linkedInvoices []string
}

// postingFor holds the sign convention for every source kind:
//
//	sale, studio sale  -> debit
//	payment            -> credit
//	discount           -> credit
//	extra expense      -> debit (it raises what the account owes)
//	unmapped           -> verbatim debit/credit, exactly one side positive
func postingFor(rec RawRecord) (posting, error) {
	switch r := rec.(type) {
	case SaleRecord:
		amount, err := parsePositive(r.Total)
		if err != nil {
			return posting{}, fmt.Errorf("sale total: %w", err)
		}

		kind := r.Kind
		if kind != TypeStudioSale {
			kind = TypeSale
		}

		return posting{docType: kind, referenceNo: r.InvoiceNo, debit: amount}, nil

	case PaymentRecord:
		amount, err := parsePositive(r.Amount)
		if err != nil {
			return posting{}, fmt.Errorf("payment amount: %w", err)
		}

		p := posting{docType: TypePayment, referenceNo: r.ReferenceNo, credit: amount}
		if r.InvoiceNo != "" {
			p.linkedInvoices = []string{r.InvoiceNo}
		}

		return p, nil

	case DiscountRecord:
		amount, err := parsePositive(r.Amount)
		if err != nil {
			return posting{}, fmt.Errorf("discount amount: %w", err)
		}

		return posting{
			docType:        TypeDiscount,
			referenceNo:    firstNonEmpty(r.ReferenceNo, r.InvoiceNo),
			credit:         amount,
			linkedInvoices: nonEmpty(r.InvoiceNo),
		}, nil

	case ExtraExpenseRecord:
		amount, err := parsePositive(r.Amount)
		if err != nil {
			return posting{}, fmt.Errorf("extra expense amount: %w", err)
		}

		return posting{
			docType:        TypeExpense,
			referenceNo:    firstNonEmpty(r.ReferenceNo, r.InvoiceNo),
			debit:          amount,
			linkedInvoices: nonEmpty(r.InvoiceNo),
		}, nil

	case UnmappedRecord:
		return unmappedPosting(r)
	}

	return posting{}, errUnknownRecord
}

func unmappedPosting(r UnmappedRecord) (posting, error) {
	debit, err := parseOptional(r.Debit)
	if err != nil {
		return posting{}, fmt.Errorf("debit: %w", err)
	}

	credit, err := parseOptional(r.Credit)
	if err != nil {
		return posting{}, fmt.Errorf("credit: %w", err)
	}

	if debit.IsZero() == credit.IsZero() {
		return posting{}, fmt.Errorf("%q: %w", r.DocumentType, errUnclassified)
	}

	docType := ParseDocumentType(r.DocumentType)
	if docType == TypeOpeningBalance {
		docType = TypeOther
	}

	return posting{docType: docType, referenceNo: r.ReferenceNo, debit: debit, credit: credit}, nil
}

// Normalize converts raw records into signed transactions, preserving input
// order. Records that cannot be posted are skipped and reported as warnings.
func Normalize(records []RawRecord) ([]Transaction, []Warning) {
	txs := make([]Transaction, 0, len(records))

	var warnings []Warning

	for _, rec := range records {
		rec = deref(rec)
		if rec == nil {
			warnings = append(warnings, Warning{Source: SourceUnmapped, Reason: errNilRecord.Error()})
			continue
		}

		meta := rec.meta()

		if meta.Date.IsZero() {
			warnings = append(warnings, warningFor(rec, errMissingDate))
			continue
		}

		p, err := postingFor(rec)
		if err != nil {
			warnings = append(warnings, warningFor(rec, err))
			continue
		}

		txs = append(txs, Transaction{
			ID:             meta.ID,
			Date:           meta.Date,
			DocumentType:   p.docType,
			ReferenceNo:    p.referenceNo,
			Description:    meta.Description,
			PaymentAccount: meta.PaymentAccount,
			Debit:          p.debit,
			Credit:         p.credit,
			Notes:          meta.Notes,
			LinkedInvoices: p.linkedInvoices,
		})
	}

	linkPayments(txs)

	return txs, warnings
}

// linkPayments records on each sale the payments that reference its invoice.
func linkPayments(txs []Transaction) {
	sales := make(map[string][]int)

	for i, tx := range txs {
		if (tx.DocumentType == TypeSale || tx.DocumentType == TypeStudioSale) && tx.ReferenceNo != "" {
			sales[tx.ReferenceNo] = append(sales[tx.ReferenceNo], i)
		}
	}

	if len(sales) == 0 {
		return
	}

	for _, tx := range txs {
		if tx.DocumentType != TypePayment || tx.ReferenceNo == "" {
			continue
		}

		for _, invoiceNo := range tx.LinkedInvoices {
			for _, idx := range sales[invoiceNo] {
				txs[idx].LinkedPayments = append(txs[idx].LinkedPayments, tx.ReferenceNo)
			}
		}
	}
}

// NetChange returns the sum of debits minus credits, ignoring the opening line.
func NetChange(txs []Transaction) decimal.Decimal {
	net := decimal.Zero

	for _, tx := range txs {
		if tx.IsOpening() {
			continue
		}

		net = net.Add(tx.Debit).Sub(tx.Credit)
	}

	return net
}

func warningFor(rec RawRecord, err error) Warning {
	return Warning{
		RecordID: rec.meta().ID.String(),
		Source:   rec.source(),
		Reason:   err.Error(),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}

	return []string{s}
}
