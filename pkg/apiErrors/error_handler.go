package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Error codes returned by the admin API.
const (
	// Authentication errors (1000-1999)
	ErrInvalidToken          = "AUTH_001" // invalid admin token
	ErrInsufficientPrivilege = "AUTH_002" // route requires the admin token

	// Validation errors (2000-2999)
	ErrInvalidRequest      = "VAL_001" // malformed request
	ErrMissingRequiredData = "VAL_002" // required data missing
	ErrInvalidFormat       = "VAL_003" // invalid data format

	// Server errors (5000-5999)
	ErrInternalServer  = "SRV_001" // internal server error
	ErrHistoryFile     = "SRV_002" // history file unreadable or malformed
	ErrExternalService = "SRV_003" // record provider failure
)

var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrHistoryFile:           http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
}

// APIError is the standard error payload of the admin API.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteError writes the standardized error payload to the HTTP response.
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError wraps a Go error into an API error payload.
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "unknown error",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
