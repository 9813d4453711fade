package sdk

import (
	"github.com/ethanbaker/api/pkg/api_types"
)

// TokenErrorMessage is the only error a caller of /token ever sees
const TokenErrorMessage = "Failed to generate token"

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  api_types.StatusType `json:"status"`          // Status message
	Code    int                  `json:"code"`            // Status code
	Message string               `json:"message"`         // Human-readable message
	Data    T                    `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any                  `json:"error,omitempty"` // Optional errors field for error responses
}

// AsGinResponse converts the ApiResponse to a format suitable for Gin framework
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  api_types.StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  api_types.StatusError,
		Code:    code,
		Message: message,
		Error:   err,
	}
}

/** Token */

// ErrorResponse is the flat error body returned by /token
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewTokenError returns the generic token failure body
func NewTokenError() ErrorResponse {
	return ErrorResponse{Error: TokenErrorMessage}
}

/** Static */

// MissingIndexMessage is reported when the asset root has no SPA entry document
const MissingIndexMessage = "SPA entry document not found"

// NewMissingIndexError returns the envelope served in place of a missing entry document
func NewMissingIndexError() ApiResponse[any] {
	return NewErrorResponse(503, MissingIndexMessage, "index.html missing from asset root")
}

/** Health */

// HealthStatus reports how the server was started
type HealthStatus struct {
	Mode   string `json:"mode"`   // development or production
	Assets bool   `json:"assets"` // Whether the SPA entry document is present
}
