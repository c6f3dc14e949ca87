package api

import (
	"net/http"

	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/services"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var params services.RegisterParams
	if err := decodeJSON(r, &params); err != nil {
		handleError(w, r, err, "register")
		return
	}

	user, err := s.UserService.Register(r.Context(), params)
	if err != nil {
		handleError(w, r, err, "register")
		return
	}
	log.Info("registered user %d", user.ID)
	writeJSON(w, r, http.StatusCreated, user)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, userFromContext(r.Context()))
}

func (s *Server) handleDeleteMe(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	if err := s.UserService.DeleteUser(r.Context(), user.ID); err != nil {
		handleError(w, r, err, "delete account")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
