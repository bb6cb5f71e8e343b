// Package apierror provides standardized error response structures for the
// API. All errors returned to clients go through this package so that
// internal details (stack traces, DB errors) never leak.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}

// RejectionError carries the aggregated reasons an invoice generation was
// refused. Clients must check the reasons list rather than inferring success
// from the absence of an error detail.
type RejectionError struct {
	Detail  string   `json:"detail"`
	Reasons []string `json:"reasons"`
}

func NewRejection(reasons []string) *RejectionError {
	return &RejectionError{Detail: "cannot generate invoice", Reasons: reasons}
}
