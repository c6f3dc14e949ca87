package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/models"
)

type reviewRequest struct {
	SpeciesID int64               `json:"speciesId"`
	Result    models.ReviewResult `json:"result"`
}

type startSessionRequest struct {
	SpeciesIDs []int64 `json:"speciesIds"`
}

type startSessionResponse struct {
	SessionID string `json:"sessionId"`
}

func (s *Server) handleSessionSpecies(w http.ResponseWriter, r *http.Request) {
	cards, err := s.FlashcardService.ListSessionSpecies(r.Context())
	if err != nil {
		handleError(w, r, err, "fetch flashcard species")
		return
	}
	writeJSON(w, r, http.StatusOK, cards)
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := userFromContext(r.Context())

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err, "submit review")
		return
	}
	log = log.WithFields(map[string]any{
		"species_id": req.SpeciesID,
		"result":     req.Result,
	})
	log.Debug("submitting review")

	outcome, err := s.FlashcardService.SubmitReview(r.Context(), user.ID, req.SpeciesID, req.Result)
	if err != nil {
		handleError(w, r, err, "submit review")
		return
	}
	writeJSON(w, r, http.StatusOK, outcome)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err, "start session")
		return
	}

	id, err := s.FlashcardService.StartSession(r.Context(), user.ID, req.SpeciesIDs)
	if err != nil {
		handleError(w, r, err, "start session")
		return
	}
	writeJSON(w, r, http.StatusOK, startSessionResponse{SessionID: id})
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	session, err := s.FlashcardService.CompleteSession(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err, "complete session")
		return
	}
	writeJSON(w, r, http.StatusOK, session)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	summary, err := s.FlashcardService.GetProgressSummary(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err, "fetch progress")
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	badges, err := s.FlashcardService.ListBadges(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err, "fetch badges")
		return
	}
	writeJSON(w, r, http.StatusOK, badges)
}
