// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ValidationResult accumulates problems found by a pipeline stage. Errors
// block the update; warnings are reported but let it proceed.
type ValidationResult struct {
	Errors   []string `json:"errors" yaml:"errors"`
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// Errorf appends a formatted error.
func (r *ValidationResult) Errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Warnf appends a formatted warning.
func (r *ValidationResult) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge appends another result's errors and warnings.
func (r *ValidationResult) Merge(other ValidationResult) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// OK reports whether no errors were recorded. Warnings do not affect it.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}
