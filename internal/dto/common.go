package dto

import "time"

// ErrorBody is the machine-readable code and human-readable message of a failed call.
type ErrorBody struct {
	Code    string `json:"code" example:"INSUFFICIENT_FUNDS"`
	Message string `json:"message" example:"insufficient funds"`
}

// ErrorResponse wraps every error returned by the API.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// HealthResponse reports liveness and, in detailed mode, dependency checks.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}
