package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFoundf("tool %s not found", "tool-1")

	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.False(t, stderrors.Is(err, ErrValidation))
	assert.Equal(t, "tool tool-1 not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus())
}

func TestError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("update: %w", AlreadyExistsf("category %q exists", "Writing"))

	assert.True(t, stderrors.Is(err, ErrAlreadyExists))

	var domainErr *Error
	assert.True(t, stderrors.As(err, &domainErr))
	assert.Equal(t, CodeAlreadyExists, domainErr.Code)
}

func TestError_WrapKeepsCause(t *testing.T) {
	cause := stderrors.New("quota exceeded")
	err := Wrap(cause, CodeInternal, "persist tools")

	assert.Equal(t, "persist tools: quota exceeded", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeValidation, http.StatusBadRequest},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestValidationWithDetails(t *testing.T) {
	err := ValidationWithDetails("validation failed", map[string]string{"title": "is required"})

	assert.True(t, stderrors.Is(err, ErrValidation))
	assert.Equal(t, map[string]string{"title": "is required"}, err.Details)
}
