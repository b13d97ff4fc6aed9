package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user does not resolve to an active record.
	ErrUserNotFound = errors.New("user not found")
	// ErrConceptNotFound is returned when a concept does not resolve to an active record.
	ErrConceptNotFound = errors.New("concept not found")
	// ErrCategoryNotFound is returned when a referenced category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("a user with this email already exists")
	// ErrCategoryExists is returned when creating a category whose name is taken.
	ErrCategoryExists = errors.New("a category with this name already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserInactive is returned when a deactivated user tries to log in.
	ErrUserInactive = errors.New("user account is deactivated")
	// ErrUnauthorized is returned when no valid bearer credential is presented.
	ErrUnauthorized = errors.New("authentication required")
	// ErrInvalidToken is returned for a malformed, expired or revoked token.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrForbidden is returned when the access policy denies an operation.
	ErrForbidden = errors.New("you do not have permission to perform this action")
	// ErrRoleChangeForbidden is returned when a non-admin tries to change a role.
	ErrRoleChangeForbidden = errors.New("only administrators can change roles")
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("you cannot delete your own account")
)

// verbose controls whether internal error details are surfaced in responses.
// Enabled outside production only.
var verbose bool

// SetVerbose toggles diagnostic detail on unexpected errors.
func SetVerbose(v bool) { verbose = v }

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unexpected errors collapse
// to an opaque 500; their detail is only exposed when verbose mode is on.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrConceptNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrCategoryExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "CATEGORY_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserInactive):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "USER_INACTIVE")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrRoleChangeForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ROLE_CHANGE_FORBIDDEN")
	case errors.Is(err, ErrSelfDelete):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_DELETE_FORBIDDEN")
	default:
		msg := "internal server error"
		if verbose && err != nil {
			msg = err.Error()
		}
		return NewHTTPError(http.StatusInternalServerError, msg, "INTERNAL_ERROR")
	}
}
