// Package preview builds a ledger from uploaded CSV exports without storing
// anything.
package preview

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/arledger/internal/http/api"
	"github.com/MrJamesThe3rd/arledger/internal/importer"
	"github.com/MrJamesThe3rd/arledger/internal/ledger"
	"github.com/MrJamesThe3rd/arledger/internal/ledger/memstore"
	"github.com/MrJamesThe3rd/arledger/internal/logger"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.preview)
}

type previewResponse struct {
	Ledger api.LedgerResponse `json:"ledger"`
	Aging  *api.AgingResponse `json:"aging,omitempty"`
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	from, to, err := api.Range(r.Form)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	q, err := api.Query(r.Form)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	opening := decimal.Zero
	if raw := r.FormValue("opening_balance"); raw != "" {
		if opening, err = decimal.NewFromString(raw); err != nil {
			api.Error(w, r, fmt.Errorf("%w: opening_balance must be a number", api.ErrBadRequest))
			return
		}
	}

	var batch importer.Batch

	if err := h.importFile(r, "records", importer.FileRecords, true, &batch); err != nil {
		api.Error(w, r, err)
		return
	}

	if err := h.importFile(r, "invoices", importer.FileInvoices, false, &batch); err != nil {
		api.Error(w, r, err)
		return
	}

	store := memstore.New()
	accountID := store.Put(memstore.Account{
		OpeningBalance: opening,
		Records:        batch.Records,
		Invoices:       batch.Invoices,
	})

	svc := ledger.NewService(store, logger.FromContext(r.Context()))

	result, err := svc.BuildLedger(r.Context(), accountID, from, to)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	resp := previewResponse{Ledger: api.ToLedger(result, svc.QueryLedger(result, q))}

	if r.FormValue("as_of") != "" {
		asOf, err := api.Date(r.Form, "as_of")
		if err != nil {
			api.Error(w, r, err)
			return
		}

		aging := api.ToAging(svc.BuildAgingReport(result.Invoices, asOf))
		resp.Aging = &aging
	}

	api.JSON(w, r, http.StatusOK, resp)
}

func (h *Handler) importFile(r *http.Request, field string, kind importer.File, required bool, batch *importer.Batch) error {
	file, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) && !required {
		return nil
	}

	if err != nil {
		return fmt.Errorf("%w: %s file is required", api.ErrBadRequest, field)
	}
	defer file.Close()

	if err := h.importSvc.Import(kind, file, batch); err != nil {
		return fmt.Errorf("importing %s: %w", field, err)
	}

	return nil
}
