package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Pipeline failure classes. Callers match them with errors.Is.
var (
	// ErrGenerationContract is returned when the model answered but the text
	// could not be turned into a generation result
	ErrGenerationContract = errors.New("generation contract violated")

	// ErrUpstreamUnavailable is returned when the model call itself failed
	ErrUpstreamUnavailable = errors.New("upstream model unavailable")
)

// ValidationError carries per-field messages for rejected Inputs or records
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// APIError represents a standardized API error with HTTP status code
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// ValidationMessages maps validator tags to user-friendly messages
var ValidationMessages = map[string]string{
	"required": "This field is required",
	"email":    "Must be a valid email address",
	"max":      "Exceeds maximum length",
	"min":      "Below minimum length",
	"gte":      "Must be greater than or equal to minimum value",
	"lte":      "Must be less than or equal to maximum value",
	"oneof":    "Must be one of the allowed values",
	"enum":     "Must be one of the allowed values",
	"finite":   "Must be a finite number",
	"numeric":  "Must be a numeric value",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}

// Common error types for RFC 7807 Problem Details
const (
	ErrorTypeValidation          = "validation_error"
	ErrorTypeNotFound            = "not_found"
	ErrorTypeBadRequest          = "bad_request"
	ErrorTypeUnauthorized        = "unauthorized"
	ErrorTypeInternal            = "internal_error"
	ErrorTypeGenerationContract  = "generation_contract_error"
	ErrorTypeUpstreamUnavailable = "upstream_unavailable"
	ErrorTypeTimeout             = "timeout"
	ErrorTypeRateLimited         = "rate_limited"
)
