package api

import (
	"net/http"

	"github.com/vytor/birdguide/internal/errors"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/models"
)

// handleError renders err as the failure envelope. action completes the
// "Failed to ..." message.
func handleError(w http.ResponseWriter, r *http.Request, err error, action string) {
	log := logger.FromContext(r.Context())
	appErr := errors.As(err)

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	writeFailure(w, r, appErr.Status, appErr.Message, action)
}

func writeFailure(w http.ResponseWriter, r *http.Request, status int, msg, action string) {
	writeJSON(w, r, status, models.APIResponse{
		Success: false,
		Error:   msg,
		Message: "Failed to " + action,
	})
}
