package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindClassification(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("gone")))
	assert.True(t, IsValidation(Validation("bad")))
	assert.True(t, IsConflict(Conflict("busy")))
	assert.False(t, IsNotFound(Validation("bad")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("loading attempt: %w", NotFound("test attempt not found"))
	assert.True(t, IsNotFound(err))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("busy"), http.StatusConflict},
		{Internal("broke", errors.New("disk full")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err))
	}
}

func TestMessageMasksInternals(t *testing.T) {
	internal := Internal("failed to save attempt", errors.New("pq: connection refused"))
	assert.Equal(t, "internal server error", Message(internal))
	assert.NotContains(t, Message(internal), "connection refused")

	assert.Equal(t, "test attempt not found", Message(NotFound("test attempt not found")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("pq: deadlock detected")
	err := Internal("mutation failed", cause)
	assert.ErrorIs(t, err, cause)
}
