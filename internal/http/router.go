package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/arledger/internal/http/aging"
	"github.com/MrJamesThe3rd/arledger/internal/http/auth"
	"github.com/MrJamesThe3rd/arledger/internal/http/ledger"
	"github.com/MrJamesThe3rd/arledger/internal/http/preview"
)

type Options struct {
	Logger         *zap.Logger
	Auth           *auth.Authenticator
	AllowedOrigins []string
}

func New(
	opts Options,
	ledgerV1 *ledger.Handler,
	agingV1 *aging.Handler,
	previewV1 *preview.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(opts.Logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(opts.Auth.Middleware)

		r.Route("/accounts/{id}", func(r chi.Router) {
			r.Route("/ledger", ledgerV1.Routes)
			r.Route("/aging", agingV1.Routes)
		})

		r.Route("/preview", func(r chi.Router) {
			r.Use(middleware.AllowContentType("multipart/form-data"))
			previewV1.Routes(r)
		})
	})

	return router
}
