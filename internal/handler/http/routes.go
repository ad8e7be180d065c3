package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// public config lookup
	router.Get("/config/{applicationID}/{version}", h.getConfig)

	router.Get("/healthz", h.healthz)

	// admin CRUD surface
	router.Route("/applications", func(r chi.Router) {
		r.Get("/", h.listApplications)
		r.Post("/", h.createApplication)

		r.Route("/{applicationID}", func(r chi.Router) {
			r.Get("/", h.getApplication)
			r.Patch("/", h.updateApplication)

			r.Post("/archive", h.archiveApplication)
			r.Post("/unarchive", h.unarchiveApplication)

			r.Post("/configs", h.createNamedConfig)
			r.Put("/configs/{name}", h.updateNamedConfig)
			r.Delete("/configs/{name}", h.deleteNamedConfig)
		})
	})

	return router
}
