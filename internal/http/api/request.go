// Package api holds the request parsing, error mapping and response shapes
// shared by the HTTP handlers.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/arledger/internal/http/auth"
	"github.com/MrJamesThe3rd/arledger/internal/ledger"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrForbidden  = errors.New("account not accessible with this token")
)

// AccountID reads the {id} URL parameter and checks it against the caller's
// token.
func AccountID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid account id", ErrBadRequest)
	}

	if !auth.ClaimsFromContext(r.Context()).Allows(id) {
		return uuid.Nil, ErrForbidden
	}

	return id, nil
}

// Date parses a required YYYY-MM-DD value.
func Date(values url.Values, key string) (time.Time, error) {
	s := values.Get(key)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", ErrBadRequest, key)
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrBadRequest, key)
	}

	return t, nil
}

// Range parses the from and to values.
func Range(values url.Values) (from, to time.Time, err error) {
	if from, err = Date(values, "from"); err != nil {
		return time.Time{}, time.Time{}, err
	}

	if to, err = Date(values, "to"); err != nil {
		return time.Time{}, time.Time{}, err
	}

	return from, to, nil
}

// Query parses the q, type, sort and order values of a ledger view.
func Query(values url.Values) (ledger.Query, error) {
	field, err := ledger.ParseSortField(values.Get("sort"))
	if err != nil {
		return ledger.Query{}, err
	}

	order, err := ledger.ParseSortOrder(values.Get("order"))
	if err != nil {
		return ledger.Query{}, err
	}

	q := ledger.Query{
		Search: values.Get("q"),
		Sort:   field,
		Order:  order,
	}

	if t := values.Get("type"); t != "" {
		q.Type = ledger.ParseDocumentType(t)
	}

	return q, nil
}
