package aging

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/arledger/internal/http/api"
	"github.com/MrJamesThe3rd/arledger/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

// get classifies the invoices of the requested period. as_of is required:
// the report never depends on the server clock.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	accountID, err := api.AccountID(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	values := r.URL.Query()

	from, to, err := api.Range(values)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	asOf, err := api.Date(values, "as_of")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	result, err := h.svc.BuildLedger(r.Context(), accountID, from, to)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, api.ToAging(h.svc.BuildAgingReport(result.Invoices, asOf)))
}
