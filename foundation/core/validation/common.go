// File: common.go
// Title: Field Validators
// Description: Reusable validators for struct fields. Each constructor takes
//              the field name used in messages and an accessor that extracts
//              the field from the validated value.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-03-03
//
// Change History:
// - 2025-01-25 v0.1.0: Initial validation framework utilities
// - 2025-03-03 v0.2.0: Replaced reflection helpers with typed field validators

package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// NotBlank fails when the extracted string is empty or whitespace only
func NotBlank(field string, get func(interface{}) string) Validator {
	return ValidatorFunc(func(value interface{}) ValidationResult {
		if strings.TrimSpace(get(value)) == "" {
			return NewValidationErrorWithField(CodeRequired, field, field+" must not be blank", nil)
		}
		return NewValidationResult()
	})
}

// IntRange fails when the extracted int is outside [lo, hi]
func IntRange(field string, lo, hi int, get func(interface{}) int) Validator {
	return ValidatorFunc(func(value interface{}) ValidationResult {
		n := get(value)
		if n < lo || n > hi {
			result := NewValidationErrorWithField(CodeRange, field,
				fmt.Sprintf("%s must be between %d and %d", field, lo, hi), n)
			result.Errors[0].Expected = fmt.Sprintf("[%d, %d]", lo, hi)
			return result
		}
		return NewValidationResult()
	})
}

// OneOf fails when the extracted string is not one of allowed (case-insensitive)
func OneOf(field string, allowed []string, get func(interface{}) string) Validator {
	return ValidatorFunc(func(value interface{}) ValidationResult {
		v := strings.ToLower(strings.TrimSpace(get(value)))
		for _, a := range allowed {
			if v == strings.ToLower(a) {
				return NewValidationResult()
			}
		}
		result := NewValidationErrorWithField(CodeOneOf, field,
			fmt.Sprintf("%s must be one of %s", field, strings.Join(allowed, ", ")), get(value))
		result.Errors[0].Expected = allowed
		return result
	})
}

// Matches fails when the extracted string does not match pattern
func Matches(field string, pattern *regexp.Regexp, get func(interface{}) string) Validator {
	return ValidatorFunc(func(value interface{}) ValidationResult {
		v := get(value)
		if !pattern.MatchString(v) {
			return NewValidationErrorWithField(CodePattern, field,
				fmt.Sprintf("%s %q does not match %s", field, v, pattern.String()), v)
		}
		return NewValidationResult()
	})
}

// EachMatches fails for every extracted string that does not match pattern
func EachMatches(field string, pattern *regexp.Regexp, get func(interface{}) []string) Validator {
	return ValidatorFunc(func(value interface{}) ValidationResult {
		result := NewValidationResult()
		for _, v := range get(value) {
			if !pattern.MatchString(v) {
				result.AddFieldError(CodePattern, field,
					fmt.Sprintf("%s entry %q does not match %s", field, v, pattern.String()), v)
			}
		}
		return result
	})
}
