package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/http/importcsv"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/http/ledger"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/http/preset"
)

type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
}

// New builds the API router. presetsV1 may be nil, in which case the preset routes are not mounted.
func New(
	opts Options,
	importV1 *importcsv.Handler,
	ledgerV1 *ledger.Handler,
	presetsV1 *preset.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(opts.Timeout))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", ledger.CredentialHeader},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/import", importV1.Routes)

		r.Group(ledgerV1.Routes)

		if presetsV1 != nil {
			r.Route("/presets", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				presetsV1.Routes(r)
			})
		}
	})

	return router
}
