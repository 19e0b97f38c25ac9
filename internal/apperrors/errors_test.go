package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(Conflict("taken")))
	assert.Equal(t, KindTimeout, KindOf(Timeout("find link")))
	assert.Equal(t, KindInternal, KindOf(errors.New("raw storage error")))

	wrapped := fmt.Errorf("outer: %w", NotFound("url not found"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestIsDomain(t *testing.T) {
	assert.True(t, IsDomain(AccessDenied("nope")))
	assert.False(t, IsDomain(errors.New("nope")))
}

func TestErrorsIsMatchesByKind(t *testing.T) {
	err := Unavailable("update operation timed out, please try again")
	assert.True(t, errors.Is(err, Unavailable("")))
	assert.False(t, errors.Is(err, Conflict("")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindAccessDenied, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindTimeout, http.StatusServiceUnavailable},
		{KindUnavailable, http.StatusServiceUnavailable},
		{KindCodeGeneration, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.kind))
	}
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("create link failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "create link failed")
}
