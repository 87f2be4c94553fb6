// File: doc.go
// Title: Core Validation Framework Package Documentation
// Description: Validator interface, results, chains and field validators.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-03-03

/*
Package validation provides small composable validators.

A Validator inspects one value and returns a ValidationResult. Chains run
several validators against the same value; field validators take an accessor
so one chain can check several fields of a struct:

	chain := validation.NewValidatorChain("command").
		Add(validation.NotBlank("name", func(v interface{}) string { return v.(Spec).Name })).
		Add(validation.IntRange("params", 0, 64, func(v interface{}) int { return v.(Spec).Params }))

	if err := chain.Validate(spec).ToError(); err != nil {
		return err
	}

ToError converts a failed result into an *error.Error. Required-field and
range failures map to CodeRequiredField and CodeValueOutOfRange, everything
else to CodeValidationFailed.
*/
package validation
