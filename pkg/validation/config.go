// Package validation provides construction-time validation for engine
// configuration. Invalid configuration is rejected before any simulation
// or traversal runs; there are no runtime configuration checks.
package validation

import (
	"errors"
	"fmt"
)

// ConfigValidator provides a fluent interface for validating configuration
// values. It collects all validation errors rather than failing on the
// first one.
type ConfigValidator struct {
	errors []error
	name   string // config struct name for error messages
}

// NewConfigValidator creates a new config validator with the given config name.
func NewConfigValidator(configName string) *ConfigValidator {
	return &ConfigValidator{
		name:   configName,
		errors: make([]error, 0),
	}
}

// MinInt validates that an int field is at least the minimum value.
func (cv *ConfigValidator) MinInt(field string, value, min int) *ConfigValidator {
	if value < min {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %d is below minimum %d", cv.name, field, value, min))
	}
	return cv
}

// MaxInt validates that an int field does not exceed the maximum value.
func (cv *ConfigValidator) MaxInt(field string, value, max int) *ConfigValidator {
	if value > max {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %d exceeds maximum %d", cv.name, field, value, max))
	}
	return cv
}

// PositiveInt validates that an int field is strictly positive.
func (cv *ConfigValidator) PositiveInt(field string, value int) *ConfigValidator {
	if value <= 0 {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %d must be positive", cv.name, field, value))
	}
	return cv
}

// PositiveFloat validates that a float field is strictly positive.
func (cv *ConfigValidator) PositiveFloat(field string, value float64) *ConfigValidator {
	if value <= 0 {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %g must be positive", cv.name, field, value))
	}
	return cv
}

// NonNegativeFloat validates that a float field is zero or positive.
func (cv *ConfigValidator) NonNegativeFloat(field string, value float64) *ConfigValidator {
	if value < 0 {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %g must not be negative", cv.name, field, value))
	}
	return cv
}

// FloatRange validates that a float field lies within [min, max].
func (cv *ConfigValidator) FloatRange(field string, value, min, max float64) *ConfigValidator {
	if value < min || value > max {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %g outside range [%g, %g]", cv.name, field, value, min, max))
	}
	return cv
}

// HasErrors reports whether any validation failed.
func (cv *ConfigValidator) HasErrors() bool {
	return len(cv.errors) > 0
}

// Err returns all collected validation errors joined together, or nil.
func (cv *ConfigValidator) Err() error {
	if len(cv.errors) == 0 {
		return nil
	}
	return errors.Join(cv.errors...)
}
