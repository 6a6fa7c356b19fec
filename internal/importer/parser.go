package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	enc "github.com/MrJamesThe3rd/arledger/internal/encoding"
	"github.com/MrJamesThe3rd/arledger/internal/ledger"
)

// rowNamespace seeds the IDs of rows that do not carry one, so re-importing
// the same file yields the same IDs.
var rowNamespace = uuid.MustParse("6f1c2b9e-4a57-4c1e-9d0a-3f6e8b2a7c41")

var dateLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006", "2006/01/02", "02.01.2006"}

// Parser reads ledger CSV exports. It auto-detects the character encoding,
// the dialect and the header row, which may follow any number of preamble
// lines.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) readRows(r io.Reader) ([][]string, Dialect, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("read input: %w", err)
	}

	dialect := detectDialect(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = dialect.Comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("read csv: %w", err)
	}

	return rows, dialect, nil
}

// ParseRecords reads a records export into raw records. Amount cells are
// rewritten to plain decimal notation but never validated here.
func (p *Parser) ParseRecords(r io.Reader) ([]ledger.RawRecord, error) {
	rows, dialect, err := p.readRows(r)
	if err != nil {
		return nil, err
	}

	cols, headerIdx, ok := detectHeader(recordsProfile, rows)
	if !ok {
		return nil, fmt.Errorf("%w: records need date, type and an amount, debit or credit column", ErrNoHeader)
	}

	var records []ledger.RawRecord

	for i, row := range rows[headerIdx+1:] {
		rowNum := headerIdx + i + 2

		label := cols.cell(row, colType)
		date := parseDate(cols.cell(row, colDate))

		// Blank and footer rows ("Total;;;...").
		if label == "" && date.IsZero() {
			continue
		}

		meta := ledger.RecordMeta{
			ID:             rowID(cols.cell(row, colID), FileRecords, rowNum, row),
			Date:           date,
			Description:    cols.cell(row, colDescription),
			PaymentAccount: cols.cell(row, colPaymentAccount),
			Notes:          cols.cell(row, colNotes),
		}

		records = append(records, buildRecord(meta, label, cols, row, dialect))
	}

	return records, nil
}

// buildRecord picks the raw record variant for a row from its type label.
func buildRecord(meta ledger.RecordMeta, label string, cols colIndex, row []string, d Dialect) ledger.RawRecord {
	amount := normalizeAmount(cols.cell(row, colAmount), d)
	debit := normalizeAmount(cols.cell(row, colDebit), d)
	credit := normalizeAmount(cols.cell(row, colCredit), d)
	ref := cols.cell(row, colReference)
	invoiceNo := cols.cell(row, colInvoice)

	switch labelKey(label) {
	case "sale", "studio_sale":
		if invoiceNo == "" {
			invoiceNo = ref
		}

		return ledger.SaleRecord{
			RecordMeta: meta,
			Kind:       ledger.ParseDocumentType(label),
			InvoiceNo:  invoiceNo,
			Total:      firstNonEmpty(amount, debit),
		}
	case "payment":
		return ledger.PaymentRecord{RecordMeta: meta, ReferenceNo: ref, InvoiceNo: invoiceNo, Amount: firstNonEmpty(amount, credit)}
	case "discount":
		return ledger.DiscountRecord{RecordMeta: meta, ReferenceNo: ref, InvoiceNo: invoiceNo, Amount: firstNonEmpty(amount, credit)}
	case "extra_expense", "extra_charge":
		return ledger.ExtraExpenseRecord{RecordMeta: meta, ReferenceNo: ref, InvoiceNo: invoiceNo, Amount: firstNonEmpty(amount, debit)}
	}

	if !cols.has(colDebit) && !cols.has(colCredit) {
		debit, credit = splitSigned(amount)
	}

	return ledger.UnmappedRecord{
		RecordMeta:   meta,
		DocumentType: label,
		ReferenceNo:  firstNonEmpty(ref, invoiceNo),
		Debit:        debit,
		Credit:       credit,
	}
}

// ParseInvoices reads an invoices export into raw invoices.
func (p *Parser) ParseInvoices(r io.Reader) ([]ledger.RawInvoice, error) {
	rows, dialect, err := p.readRows(r)
	if err != nil {
		return nil, err
	}

	cols, headerIdx, ok := detectHeader(invoicesProfile, rows)
	if !ok {
		return nil, fmt.Errorf("%w: invoices need invoice, date and total columns", ErrNoHeader)
	}

	var invoices []ledger.RawInvoice

	for i, row := range rows[headerIdx+1:] {
		rowNum := headerIdx + i + 2

		invoiceNo := cols.cell(row, colInvoice)
		if invoiceNo == "" {
			continue
		}

		inv := ledger.RawInvoice{
			ID:        rowID(cols.cell(row, colID), FileInvoices, rowNum, row),
			InvoiceNo: invoiceNo,
			Date:      parseDate(cols.cell(row, colDate)),
			Total:     normalizeAmount(cols.cell(row, colTotal), dialect),
			Paid:      normalizeAmount(cols.cell(row, colPaid), dialect),
		}

		if items := cols.cell(row, colItems); items != "" && json.Valid([]byte(items)) {
			inv.Items = json.RawMessage(items)
		}

		invoices = append(invoices, inv)
	}

	return invoices, nil
}

// parseDate returns the zero time for cells in no known layout; the
// normalizer reports those records as missing their date.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}

func rowID(raw string, file File, rowNum int, row []string) uuid.UUID {
	if id, err := uuid.Parse(raw); err == nil {
		return id
	}

	name := fmt.Sprintf("%s:%d:%s", file, rowNum, strings.Join(row, "\x1f"))

	return uuid.NewSHA1(rowNamespace, []byte(name))
}

func labelKey(label string) string {
	k := strings.ToLower(strings.TrimSpace(label))

	return strings.NewReplacer(" ", "_", "-", "_").Replace(k)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
