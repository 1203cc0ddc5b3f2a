package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-storefront/errs"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// WriteJSON encodes body with the given status
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Str("component", "response").Msg("encoding response")
	}
}

// WriteMessage writes {"message": msg}
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"message": msg})
}

// WriteError maps err to its status. Internal errors are logged and
// hidden from the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		resp := ErrorResponse{Message: errs.ErrClient.Error()}
		for _, fe := range verrs {
			resp.Errors = append(resp.Errors, ValidationError{Field: fe.Field(), Tag: fe.Tag()})
		}
		WriteJSON(w, http.StatusBadRequest, resp)
		return
	}

	status := errs.StatusCode(err)
	if status == http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).
			Str("component", "handler").
			Str("endpoint", r.URL.Path).
			Msg("request failed")
	}
	WriteJSON(w, status, ErrorResponse{Message: errs.Public(err)})
}

// DecodeJSON reads the request body into dst
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.ErrClient
	}
	return nil
}

// Validate runs the struct's validate tags
func Validate(v interface{}) error {
	return validate.Struct(v)
}
