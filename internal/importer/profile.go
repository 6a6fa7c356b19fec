package importer

import "strings"

// Canonical column names. Header cells are matched against their aliases.
const (
	colID             = "id"
	colDate           = "date"
	colType           = "type"
	colReference      = "reference"
	colInvoice        = "invoice"
	colDescription    = "description"
	colPaymentAccount = "payment_account"
	colNotes          = "notes"
	colAmount         = "amount"
	colDebit          = "debit"
	colCredit         = "credit"
	colTotal          = "total"
	colPaid           = "paid"
	colItems          = "items"
)

// aliases lists the accepted header spellings per canonical column, already
// passed through headerKey.
var aliases = map[string][]string{
	colID:             {"id", "record id"},
	colDate:           {"date", "data", "data mov.", "transaction date", "invoice date"},
	colType:           {"type", "document type", "doc type", "tipo"},
	colReference:      {"reference", "reference no", "reference no.", "ref", "ref no", "referência"},
	colInvoice:        {"invoice", "invoice no", "invoice no.", "invoice number", "fatura"},
	colDescription:    {"description", "descrição", "details"},
	colPaymentAccount: {"payment account", "account", "conta"},
	colNotes:          {"notes", "note", "observações"},
	colAmount:         {"amount", "montante", "valor"},
	colDebit:          {"debit", "débito"},
	colCredit:         {"credit", "crédito"},
	colTotal:          {"total", "invoice total"},
	colPaid:           {"paid", "paid amount", "pago"},
	colItems:          {"items"},
}

// Profile describes the column layout of one kind of export.
// Adding a new layout is just adding a new Profile.
type Profile struct {
	Name     string
	Required []string
	// AnyOf lists columns of which at least one must be present.
	AnyOf []string
}

var (
	recordsProfile = Profile{
		Name:     "records",
		Required: []string{colDate, colType},
		AnyOf:    []string{colAmount, colDebit, colCredit},
	}

	invoicesProfile = Profile{
		Name:     "invoices",
		Required: []string{colInvoice, colDate, colTotal},
	}
)

// colIndex maps canonical column names to their index in the row.
type colIndex map[string]int

func headerKey(cell string) string {
	k := strings.ToLower(strings.TrimSpace(cell))
	k = strings.ReplaceAll(k, "_", " ")

	return strings.Join(strings.Fields(k), " ")
}

// indexHeader resolves a candidate header row into canonical columns.
func indexHeader(row []string) colIndex {
	byAlias := make(map[string]string)

	for canonical, names := range aliases {
		for _, n := range names {
			byAlias[n] = canonical
		}
	}

	cols := make(colIndex)

	for i, cell := range row {
		canonical, ok := byAlias[headerKey(cell)]
		if !ok {
			continue
		}

		if _, seen := cols[canonical]; !seen {
			cols[canonical] = i
		}
	}

	return cols
}

func (p Profile) matches(cols colIndex) bool {
	for _, name := range p.Required {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	if len(p.AnyOf) == 0 {
		return true
	}

	for _, name := range p.AnyOf {
		if _, ok := cols[name]; ok {
			return true
		}
	}

	return false
}

// detectHeader scans rows for the first one matching p. It returns the
// column index and the header's row index.
func detectHeader(p Profile, rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		cols := indexHeader(row)
		if p.matches(cols) {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

// cell safely gets a trimmed cell value for a canonical column.
func (c colIndex) cell(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func (c colIndex) has(name string) bool {
	_, ok := c[name]
	return ok
}
