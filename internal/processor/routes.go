package processor

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the data processor endpoints under /processor.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/processor", func(r chi.Router) {
		r.Post("/numbers", h.Numbers)
		r.Post("/filter", h.Filter)
		r.Post("/json", h.Convert)

		r.Get("/stats", h.Stats)
		r.Get("/history", h.History)
		r.Delete("/history", h.ClearHistory)
	})
}
