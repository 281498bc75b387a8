package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// The same error covers both halves so callers cannot tell which failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountNotConfirmed is returned when credentials are correct but the
	// account never confirmed its email.
	ErrAccountNotConfirmed = errors.New("account email not confirmed")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrForbidden is returned when an authenticated user lacks the required role.
	ErrForbidden = errors.New("insufficient role")
	// ErrNotCollectePoint is returned when a collecte operation targets a user
	// whose location is not a collection point.
	ErrNotCollectePoint = errors.New("user is not a collection point")
	// ErrCollecteStatusDecrease is returned when a status report would lower
	// the fullness level; only a completed passage may do that.
	ErrCollecteStatusDecrease = errors.New("collecte status cannot decrease")
	// ErrInvalidCollecteStatus is returned for an unknown fullness level.
	ErrInvalidCollecteStatus = errors.New("invalid collecte status")
	// ErrMaterialNotFound is returned when a material is not found.
	ErrMaterialNotFound = errors.New("material not found")
	// ErrBottleNotFound is returned when a bottle is not found.
	ErrBottleNotFound = errors.New("bottle not found")
	// ErrPassageNotFound is returned when a passage is not found.
	ErrPassageNotFound = errors.New("passage not found")
	// ErrPassageCompleted is returned when completing an already completed passage.
	ErrPassageCompleted = errors.New("passage already completed")
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
)

// ErrorResponse represents a standardized error response.
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

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Storage faults and other
// unknown errors map to a generic 500; they are not retried here.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrMaterialNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MATERIAL_NOT_FOUND")
	case errors.Is(err, ErrBottleNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BOTTLE_NOT_FOUND")
	case errors.Is(err, ErrPassageNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PASSAGE_NOT_FOUND")
	case errors.Is(err, ErrOrderNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ORDER_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAccountNotConfirmed):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "ACCOUNT_NOT_CONFIRMED")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrNotCollectePoint):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "NOT_COLLECTE_POINT")
	case errors.Is(err, ErrCollecteStatusDecrease):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "COLLECTE_STATUS_DECREASE")
	case errors.Is(err, ErrInvalidCollecteStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_COLLECTE_STATUS")
	case errors.Is(err, ErrPassageCompleted):
		return NewHTTPError(http.StatusConflict, err.Error(), "PASSAGE_COMPLETED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
