package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrMissingCredentials is returned when email or password is empty at registration.
	ErrMissingCredentials = errors.New("Email dan Password wajib diisi!")
	// ErrMissingEmail is returned when an email edit carries no email.
	ErrMissingEmail = errors.New("Email wajib diisi!")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("Email sudah terdaftar!")
	// ErrInvalidRole is returned when registration names a role other than user or admin.
	ErrInvalidRole = errors.New("Role tidak valid!")
	// ErrInvalidCredentials is returned for any login mismatch.
	ErrInvalidCredentials = errors.New("Email atau Password salah!")
	// ErrUserNotFound is returned when no user row matches the id.
	ErrUserNotFound = errors.New("User tidak ditemukan")
	// ErrInvalidAPIKey is returned by the optional server-side key check.
	ErrInvalidAPIKey = errors.New("API Key tidak valid")
	// ErrForbidden is returned when a valid key lacks the required role.
	ErrForbidden = errors.New("Akses ditolak")
)

// StoreError wraps a persistence failure. Its message is the underlying one, verbatim.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store wraps err as a StoreError. A nil err stays nil.
func Store(err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Err: err}
}

// ErrorResponse is the JSON envelope for failures. Client-facing failures carry
// pesan; store failures carry error.
type ErrorResponse struct {
	Pesan string `json:"pesan,omitempty"`
	Error string `json:"error,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Pesan      string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Pesan
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, pesan, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Pesan:      pesan,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Pesan: e.Pesan,
		Error: e.Message,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Client-facing messages
// always come from the matched sentinel, never from wrapping context.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range clientErrors {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), "")
		}
	}

	var se *StoreError
	if errors.As(err, &se) {
		return NewHTTPError(http.StatusInternalServerError, "", se.Error())
	}
	return NewHTTPError(http.StatusInternalServerError, "", err.Error())
}

var clientErrors = []struct {
	err    error
	status int
}{
	{ErrMissingCredentials, http.StatusBadRequest},
	{ErrMissingEmail, http.StatusBadRequest},
	{ErrInvalidRole, http.StatusBadRequest},
	{ErrEmailTaken, http.StatusBadRequest},
	{ErrInvalidCredentials, http.StatusUnauthorized},
	{ErrInvalidAPIKey, http.StatusUnauthorized},
	{ErrForbidden, http.StatusForbidden},
	{ErrUserNotFound, http.StatusNotFound},
}
