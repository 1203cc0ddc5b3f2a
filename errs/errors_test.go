package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusCode(nil))
	assert.Equal(t, http.StatusConflict, StatusCode(ErrEmailAlreadyUsed))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(ErrInvalidCredentials))
	assert.Equal(t, http.StatusNotFound, StatusCode(fmt.Errorf("product: %w", ErrNotFound)))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}

func TestPublicHidesInternalErrors(t *testing.T) {
	assert.Equal(t, "Internal server error", Public(errors.New("mongo: connection refused")))
	assert.Equal(t, "Insufficient stock", Public(ErrInsufficientStock))
}
