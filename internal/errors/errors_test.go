package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTypes_HTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{ValidationError("bad input"), http.StatusBadRequest},
		{NotFoundError("missing"), http.StatusNotFound},
		{ConflictError("no selection"), http.StatusConflict},
		{InternalError("boom", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.HTTPStatus())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := InternalError("storage unavailable", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestError_WithField(t *testing.T) {
	err := ValidationError("invalid user id").WithField("user_id", 9999)

	resp := err.ToResponse()
	assert.Equal(t, "invalid user id", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, 9999, resp.Context["user_id"])
}

func TestAsStructuredError_PassesThrough(t *testing.T) {
	orig := NotFoundError("gone")
	assert.Same(t, orig, AsStructuredError(orig))
}

func TestAsStructuredError_WrapsPlainError(t *testing.T) {
	plain := fmt.Errorf("oops")
	structured := AsStructuredError(plain)

	require.NotNil(t, structured)
	assert.Equal(t, TypeInternal, structured.Type)
	assert.True(t, errors.Is(structured, plain))
}

func TestAsStructuredError_Nil(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))
}
