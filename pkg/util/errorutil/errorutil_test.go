package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad input", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{NewConflict("duplicate", nil), "CONFLICT", http.StatusConflict},
		{NewNotFound("missing", nil), "NOT_FOUND", http.StatusNotFound},
		{NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		domainErr := ToDomainError(tc.err)
		require.NotNil(t, domainErr)
		assert.Equal(t, tc.code, domainErr.Code)
		assert.Equal(t, tc.status, domainErr.HTTPStatus)
	}
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestToDomainErrorMapsNoRowsToNotFound(t *testing.T) {
	domainErr := ToDomainError(fmt.Errorf("query wardens: %w", pgx.ErrNoRows))
	require.NotNil(t, domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestToDomainErrorWrapsUnknownAsInternal(t *testing.T) {
	cause := errors.New("connection refused")
	domainErr := ToDomainError(cause)
	require.NotNil(t, domainErr)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	// the generic message must not leak the cause
	assert.Equal(t, "internal server error", domainErr.Message)
	assert.ErrorIs(t, domainErr, cause)
}

func TestInternalErrorHidesCauseInMessageField(t *testing.T) {
	err := NewInternalError(errors.New("dsn: password=hunter2"))
	domainErr := ToDomainError(err)
	assert.Equal(t, "internal server error", domainErr.Message)
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewConflict("duplicate", nil))
	assert.True(t, IsCode(err, "CONFLICT"))
	assert.False(t, IsCode(err, "NOT_FOUND"))
	assert.False(t, IsCode(nil, "CONFLICT"))
}
