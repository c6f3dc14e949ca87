package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/birdguide/internal/logger"
)

func (s *Server) handleListSpecies(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	lang := r.URL.Query().Get("lang")
	log.Debug("listing species: lang=%s", lang)

	species, err := s.SpeciesService.ListSpecies(r.Context(), lang)
	if err != nil {
		handleError(w, r, err, "fetch species")
		return
	}
	writeData(w, r, species)
}

func (s *Server) handleGetSpecies(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	idStr := chi.URLParam(r, "id")

	id, err := parseSpeciesID(idStr)
	if err != nil {
		log.Warn("invalid species id: %s", idStr)
		handleError(w, r, err, "fetch species")
		return
	}

	species, err := s.SpeciesService.GetSpecies(r.Context(), id, r.URL.Query().Get("lang"))
	if err != nil {
		handleError(w, r, err, "fetch species")
		return
	}
	if species == nil {
		log.Debug("species %d not found", id)
		writeFailure(w, r, http.StatusNotFound, "Species not found", "fetch species")
		return
	}
	writeData(w, r, species)
}
