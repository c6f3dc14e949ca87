package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	r.Get("/species", s.handleListSpecies)
	r.Get("/species/{id}", s.handleGetSpecies)
	r.Post("/auth/register", s.handleRegister)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/flashcards/species", s.handleSessionSpecies)
		r.Post("/flashcards/review", s.handleSubmitReview)
		r.Post("/flashcards/session", s.handleStartSession)
		r.Post("/flashcards/session/{id}/complete", s.handleCompleteSession)
		r.Get("/flashcards/progress", s.handleProgress)
		r.Get("/flashcards/badges", s.handleBadges)

		r.Get("/users/me", s.handleMe)
		r.Delete("/users/me", s.handleDeleteMe)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, r, http.StatusNotFound, "route not found", "handle request")
	})
	return r
}
