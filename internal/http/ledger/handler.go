package ledger

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/arledger/internal/export"
	"github.com/MrJamesThe3rd/arledger/internal/http/api"
	"github.com/MrJamesThe3rd/arledger/internal/ledger"
	"github.com/MrJamesThe3rd/arledger/internal/logger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Get("/export", h.download)
}

func (h *Handler) request(r *http.Request) (export.Request, error) {
	accountID, err := api.AccountID(r)
	if err != nil {
		return export.Request{}, err
	}

	values := r.URL.Query()

	from, to, err := api.Range(values)
	if err != nil {
		return export.Request{}, err
	}

	q, err := api.Query(values)
	if err != nil {
		return export.Request{}, err
	}

	return export.Request{AccountID: accountID, From: from, To: to, Query: q}, nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	req, err := h.request(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	result, err := h.svc.BuildLedger(r.Context(), req.AccountID, req.From, req.To)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, api.ToLedger(result, h.svc.QueryLedger(result, req.Query)))
}

// download streams the filtered ledger as CSV. The ledger is built before
// any byte is written so failures still get a proper status code.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	req, err := h.request(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	result, err := h.svc.BuildLedger(r.Context(), req.AccountID, req.From, req.To)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(req.AccountID, req.From, req.To)))

	if err := export.WriteCSV(w, h.svc.QueryLedger(result, req.Query)); err != nil {
		logger.FromContext(r.Context()).Error("failed to write csv", zap.Error(err))
	}
}
