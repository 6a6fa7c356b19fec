package importer

import (
	"errors"

	"github.com/MrJamesThe3rd/arledger/internal/ledger"
)

// File identifies which kind of CSV export is being imported.
type File string

const (
	FileRecords  File = "records"
	FileInvoices File = "invoices"
)

var ErrNoHeader = errors.New("no matching header row")

// Batch is everything read from one or more CSV exports of an account.
type Batch struct {
	Records  []ledger.RawRecord
	Invoices []ledger.RawInvoice
}
