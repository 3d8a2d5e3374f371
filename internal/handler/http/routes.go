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
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/ping", h.ping)
		r.Get("/api/version", h.getServerVersion)
	})

	// per-user document routes; {userID} is matched here so the middlewares
	// below can compare it against the token subject
	router.Route("/api/users/{userID}", func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.checkPathUser)
		r.Use(h.checkBodySignature)

		r.Get("/journeys/{missionID}", h.getJourney)
		r.Put("/journeys/{missionID}", h.upsertJourney)
		r.Post("/study_sessions", h.appendStudySession)
		r.Post("/analytics_events", h.appendAnalyticsEvent)
		r.Patch("/", h.mergePreferences)
		r.Put("/sessions/{itemID}", h.upsertSession)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
