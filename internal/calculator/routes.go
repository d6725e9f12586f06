package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/add", h.Add)
		r.Post("/subtract", h.Subtract)
		r.Post("/multiply", h.Multiply)
		r.Post("/divide", h.Divide)
		r.Post("/power", h.Power)
		r.Post("/sum", h.Sum)
		r.Post("/average", h.Average)
		r.Post("/chain", h.Chain)

		r.Get("/stats", h.Stats)
		r.Get("/history", h.History)
		r.Delete("/history", h.ClearHistory)
	})
}
