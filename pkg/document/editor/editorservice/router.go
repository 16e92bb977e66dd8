package editorservice

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all parser routes mounted.
func NewRouter(svc *Service) chi.Router {
	h := &handler{svc: svc}

	r := chi.NewRouter()
	r.Use(h.limitBody)

	r.Get("/healthz", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/deserialize", h.Deserialize)
		r.Post("/serialize", h.Serialize)

		if svc.store != nil {
			r.Get("/notebooks", h.ListNotebooks)
			r.Get("/notebooks/*", h.GetNotebook)
		}
	})

	return r
}

func (h *handler) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, h.svc.maxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}
