package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-storefront/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

func TestWriteErrorStatuses(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{errs.ErrNotFound, http.StatusNotFound, errs.ErrNotFound.Error()},
		{fmt.Errorf("purchase: %w", errs.ErrInsufficientStock), http.StatusConflict, "purchase: Insufficient stock"},
		{fmt.Errorf("dial tcp: refused"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)

		assert.Equal(t, tc.status, rec.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.msg, body.Message)
	}
}

func TestWriteErrorListsValidationFailures(t *testing.T) {
	err := Validate(signup{Email: "nope"})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.ElementsMatch(t, []ValidationError{{Field: "Email", Tag: "email"}, {Field: "Name", Tag: "required"}}, body.Errors)
}
