package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Get("/api/version", h.getServerVersion)
	router.Method("GET", "/metrics", promhttp.Handler())

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		r.Get("/api/favorites", h.getFavorites)
		r.Get("/api/usage", h.getUsage)
		r.Post("/api/upload", h.upload)

		r.Route("/api/pages", func(r chi.Router) {
			r.Get("/", h.listPages)
			r.Post("/", h.openPage)
			r.Get("/ws", h.pageSocket)

			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", h.closePage)
				r.Post("/focus", h.focusPage)
				r.Post("/star", h.starPage)
				r.Get("/favorites", h.getPageFavorites)
				r.Put("/favorites", h.replacePageFavorites)
			})
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
