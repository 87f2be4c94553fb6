// File: interfaces.go
// Title: Core Validation Interfaces and Types
// Description: Defines the Validator interface, result types and error codes
//              shared by configuration loading and command registration.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-03-03
//
// Change History:
// - 2025-01-25 v0.1.0: Initial validation interfaces implementation
// - 2025-03-03 v0.2.0: Reduced code set, ToError maps onto foundation error codes

package validation

import (
	"fmt"
	"strings"

	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
)

// Validation error codes
const (
	CodeRequired = "VALIDATION_REQUIRED" // Field is required but missing
	CodeRange    = "VALIDATION_RANGE"    // Numeric range validation
	CodeType     = "VALIDATION_TYPE"     // Type validation
	CodePattern  = "VALIDATION_PATTERN"  // Regex pattern validation
	CodeOneOf    = "VALIDATION_ONE_OF"   // Value outside an allowed set
	CodeCustom   = "VALIDATION_CUSTOM"   // Custom validation rules
)

// Validator defines the interface for all validation functions
type Validator interface {
	Validate(value interface{}) ValidationResult
}

// ValidatorFunc is a function type that implements the Validator interface
type ValidatorFunc func(value interface{}) ValidationResult

// Validate implements the Validator interface for ValidatorFunc
func (f ValidatorFunc) Validate(value interface{}) ValidationResult {
	return f(value)
}

// ValidationResult represents the result of a validation operation
type ValidationResult struct {
	Valid   bool                   `json:"valid"`
	Errors  []ValidationError      `json:"errors,omitempty"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Code     string      `json:"code"`
	Field    string      `json:"field,omitempty"`
	Message  string      `json:"message"`
	Value    interface{} `json:"value,omitempty"`
	Expected interface{} `json:"expected,omitempty"`
}

// NewValidationResult creates a successful validation result
func NewValidationResult() ValidationResult {
	return ValidationResult{Valid: true}
}

// NewValidationError creates a failed validation result with a single error
func NewValidationError(code, message string) ValidationResult {
	return ValidationResult{
		Valid:  false,
		Errors: []ValidationError{{Code: code, Message: message}},
	}
}

// NewValidationErrorWithField creates a validation error for a specific field
func NewValidationErrorWithField(code, field, message string, value interface{}) ValidationResult {
	return ValidationResult{
		Valid: false,
		Errors: []ValidationError{{
			Code:    code,
			Field:   field,
			Message: message,
			Value:   value,
		}},
	}
}

// AddError adds an error to an existing validation result
func (r *ValidationResult) AddError(code, message string) *ValidationResult {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Code: code, Message: message})
	return r
}

// AddFieldError adds a field-specific error to the validation result
func (r *ValidationResult) AddFieldError(code, field, message string, value interface{}) *ValidationResult {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{
		Code:    code,
		Field:   field,
		Message: message,
		Value:   value,
	})
	return r
}

// WithContext adds context information to the validation result
func (r *ValidationResult) WithContext(key string, value interface{}) *ValidationResult {
	if r.Context == nil {
		r.Context = make(map[string]interface{})
	}
	r.Context[key] = value
	return r
}

// FirstError returns the first validation error, or nil if validation passed
func (r ValidationResult) FirstError() *ValidationError {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

// ErrorMessages returns all error messages
func (r ValidationResult) ErrorMessages() []string {
	messages := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		messages[i] = err.Message
	}
	return messages
}

// HasError checks if the result contains a specific error code
func (r ValidationResult) HasError(code string) bool {
	for _, err := range r.Errors {
		if err.Code == code {
			return true
		}
	}
	return false
}

// ToError converts the result into a *error.Error, or nil when valid. The
// first failure becomes the message; all messages are kept as a detail.
func (r ValidationResult) ToError() error {
	if r.Valid {
		return nil
	}
	if len(r.Errors) == 0 {
		return mdwerror.New("validation failed").WithCode(mdwerror.CodeValidationFailed)
	}

	first := r.Errors[0]
	err := mdwerror.New(first.Message).
		WithCode(errorCode(first.Code)).
		WithDetail("validationCode", first.Code)
	if first.Field != "" {
		err = err.WithDetail("field", first.Field)
	}
	if first.Value != nil {
		err = err.WithDetail("value", first.Value)
	}
	if first.Expected != nil {
		err = err.WithDetail("expected", first.Expected)
	}
	if len(r.Errors) > 1 {
		err = err.WithDetail("totalErrors", len(r.Errors)).
			WithDetail("allMessages", strings.Join(r.ErrorMessages(), "; "))
	}
	return err
}

func errorCode(code string) mdwerror.Code {
	switch code {
	case CodeRequired:
		return mdwerror.CodeRequiredField
	case CodeRange:
		return mdwerror.CodeValueOutOfRange
	default:
		return mdwerror.CodeValidationFailed
	}
}

// String returns a human-readable representation of the validation result
func (r ValidationResult) String() string {
	if r.Valid {
		return "ValidationResult{valid: true}"
	}
	parts := []string{"ValidationResult{valid: false"}
	if len(r.Errors) > 0 {
		parts = append(parts, fmt.Sprintf("errors: %d", len(r.Errors)))
		parts = append(parts, fmt.Sprintf("first: %s", r.Errors[0].Message))
		if r.Errors[0].Field != "" {
			parts = append(parts, fmt.Sprintf("field: %s", r.Errors[0].Field))
		}
	}
	return strings.Join(parts, ", ") + "}"
}

// Combine merges multiple validation results into a single result
func Combine(results ...ValidationResult) ValidationResult {
	combined := NewValidationResult()
	for _, result := range results {
		if !result.Valid {
			combined.Valid = false
			combined.Errors = append(combined.Errors, result.Errors...)
		}
		for key, value := range result.Context {
			combined.WithContext(key, value)
		}
	}
	return combined
}
