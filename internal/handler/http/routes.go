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

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/login", h.login)
	})

	// routes behind session token verification
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/verify", h.verify)

		r.Get("/api/directory/config", h.getDirectoryConfig)
		r.Put("/api/directory/config", h.saveDirectoryConfig)
		r.Post("/api/directory/test", h.testDirectoryConnection)
		r.Post("/api/directory/sync", h.triggerSync)
	})

	return router
}
