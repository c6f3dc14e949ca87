package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/vytor/birdguide/internal/errors"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/models"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// writeData wraps v in the success envelope.
func writeData(w http.ResponseWriter, r *http.Request, v any) {
	writeJSON(w, r, http.StatusOK, models.APIResponse{Success: true, Data: v})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	return nil
}

// parseSpeciesID parses a path id, rejecting anything but a positive integer.
func parseSpeciesID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError("id", "invalid species id")
	}
	return id, nil
}
