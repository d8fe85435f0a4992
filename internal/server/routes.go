package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"craft_market/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/runs", func(r chi.Router) {
			r.Post("/", handler(s.postV1Run))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handler(s.getV1Run))
				r.Get("/state", handler(s.getV1RunState))
				r.Get("/schedule", handler(s.getV1RunSchedule))
				r.Get("/days/{day}", handler(s.getV1RunDay))
				r.Post("/participants/{index}/decision", handler(s.postV1RunDecision))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
