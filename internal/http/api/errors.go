package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/arledger/internal/importer"
	"github.com/MrJamesThe3rd/arledger/internal/ledger"
	"github.com/MrJamesThe3rd/arledger/internal/logger"
)

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrOpeningBalanceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ledger.ErrInvalidRange),
		errors.Is(err, ledger.ErrInvalidQuery),
		errors.Is(err, importer.ErrNoHeader):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err with the status StatusFor gives it. Server-side failures
// are logged with the request's logger and hidden from the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)

	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		logger.FromContext(r.Context()).Error("request failed", zap.Int("status", status), zap.Error(err))
		http.Error(w, http.StatusText(status), status)

		return
	}

	http.Error(w, err.Error(), status)
}
