package errs

import (
	"errors"
	"net/http"
)

var (
	ErrInternalServer      = errors.New("Internal server error")
	ErrClient              = errors.New("Bad request")
	ErrNotLoggedIn         = errors.New("Unauthorized access")
	ErrForbidden           = errors.New("Forbidden access")
	ErrNotFound            = errors.New("Resource not found")
	ErrInvalidCredentials  = errors.New("Invalid email or password")
	ErrWrongPassword       = errors.New("Invalid current password")
	ErrEmailAlreadyUsed    = errors.New("Email has already been used")
	ErrInvalidToken        = errors.New("Invalid token")
	ErrTokenExpired        = errors.New("Token has expired")
	ErrInvalidSession      = errors.New("Invalid session")
	ErrInsufficientStock   = errors.New("Insufficient stock")
	ErrInvalidTransition   = errors.New("Shipping status transition not allowed")
	ErrNotEditable         = errors.New("Purchase can no longer be changed")
	ErrAlreadyExists       = errors.New("Resource already exists")
	ErrFileTooLarge        = errors.New("File exceeds the size limit")
	ErrUnsupportedFileType = errors.New("Invalid file type")
	ErrTooManyRequests     = errors.New("Too many requests")
)

var errorMap = map[error]int{
	ErrInternalServer:      http.StatusInternalServerError,
	ErrClient:              http.StatusBadRequest,
	ErrNotLoggedIn:         http.StatusUnauthorized,
	ErrForbidden:           http.StatusForbidden,
	ErrNotFound:            http.StatusNotFound,
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrWrongPassword:       http.StatusUnauthorized,
	ErrEmailAlreadyUsed:    http.StatusConflict,
	ErrInvalidToken:        http.StatusBadRequest,
	ErrTokenExpired:        http.StatusBadRequest,
	ErrInvalidSession:      http.StatusUnauthorized,
	ErrInsufficientStock:   http.StatusConflict,
	ErrInvalidTransition:   http.StatusConflict,
	ErrNotEditable:         http.StatusConflict,
	ErrAlreadyExists:       http.StatusBadRequest,
	ErrFileTooLarge:        http.StatusRequestEntityTooLarge,
	ErrUnsupportedFileType: http.StatusBadRequest,
	ErrTooManyRequests:     http.StatusTooManyRequests,
}

// StatusCode maps err, or any sentinel it wraps, to an HTTP status.
// Unknown errors are internal.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if code, ok := errorMap[err]; ok {
		return code
	}
	for sentinel, code := range errorMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return http.StatusInternalServerError
}

// Public returns the message that is safe to show a client
func Public(err error) string {
	if StatusCode(err) == http.StatusInternalServerError {
		return ErrInternalServer.Error()
	}
	return err.Error()
}
