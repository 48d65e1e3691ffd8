// Package processor validates conversion input and merges the flattened
// language documents into translation records.
package processor

import (
	"fmt"
	"strings"

	"github.com/BartekS5/uilm/pkg/flatten"
	"github.com/BartekS5/uilm/pkg/models"
)

// ValidationResult lists every problem found in a configuration.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Err returns the problems as a *ValidationError, or nil when valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Errors: r.Errors}
}

// ValidationError carries all validation messages of one configuration.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, ", ")
}

// Validate checks the required metadata and the syntax of every non-empty
// language input. All failures are collected; nothing short-circuits.
func Validate(cfg models.Configuration) ValidationResult {
	errs := []string{}

	required := []struct {
		label string
		value string
	}{
		{"Module ID", cfg.ModuleID},
		{"Module Name", cfg.ModuleName},
		{"Tenant ID", cfg.TenantID},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, fmt.Sprintf("%s is required", f.label))
		}
	}

	for _, lang := range models.Languages {
		input := cfg.Input(lang)
		if strings.TrimSpace(input) == "" {
			continue
		}
		if !flatten.Valid(input) {
			errs = append(errs, fmt.Sprintf("%s JSON is invalid", lang.Name))
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
