package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/birdguide/internal/errors"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *errors.AppError
		code   string
		status int
		msg    string
	}{
		{"not found", errors.NewNotFoundError("species", 7), errors.ErrCodeNotFound, http.StatusNotFound, "species not found: 7"},
		{"validation", errors.NewValidationError("result", "must be correct or incorrect"), errors.ErrCodeValidation, http.StatusBadRequest, "validation failed for result: must be correct or incorrect"},
		{"bad request", errors.NewBadRequestError("invalid JSON body"), errors.ErrCodeBadRequest, http.StatusBadRequest, "invalid JSON body"},
		{"unauthorized", errors.NewUnauthorizedError("missing bearer token"), errors.ErrCodeUnauthorized, http.StatusUnauthorized, "missing bearer token"},
		{"conflict", errors.NewConflictError("progress changed concurrently", nil), errors.ErrCodeConflict, http.StatusConflict, "progress changed concurrently"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.msg, tt.err.Message)
		})
	}
}

func TestInternalErrorCarriesCause(t *testing.T) {
	cause := stderrors.New("database is locked")
	err := errors.NewInternalError(cause)

	assert.Equal(t, "database is locked", err.Message)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "INTERNAL_ERROR")
}

func TestAs(t *testing.T) {
	notFound := errors.NewNotFoundError("session", "abc")
	wrapped := fmt.Errorf("complete session: %w", notFound)

	assert.Same(t, notFound, errors.As(wrapped))
	assert.True(t, errors.HasCode(wrapped, errors.ErrCodeNotFound))

	plain := errors.As(stderrors.New("boom"))
	assert.Equal(t, errors.ErrCodeInternal, plain.Code)
	assert.False(t, errors.HasCode(stderrors.New("boom"), errors.ErrCodeNotFound))
}
