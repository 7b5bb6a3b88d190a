package cabinet

import (
	"fmt"
	"math"
)

// ConfigurationError reports an input outside its documented domain. It is
// returned before any result is produced.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("cabinet: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// NumericDomainError records a computation that would have produced a
// non-finite or out-of-domain value and the fallback used in its place.
type NumericDomainError struct {
	Quantity string
	Value    float64
	Fallback float64
}

func (e NumericDomainError) Error() string {
	return fmt.Sprintf("cabinet: %s out of domain (%g), using %g", e.Quantity, e.Value, e.Fallback)
}

// fallbacks collects NumericDomainErrors while a recommendation is built.
type fallbacks []NumericDomainError

// finiteMin returns v when it is finite and >= min, otherwise fallback.
func (fb *fallbacks) finiteMin(quantity string, v, min, fallback float64) float64 {
	if isFinite(v) && v >= min {
		return v
	}
	if fb != nil {
		*fb = append(*fb, NumericDomainError{Quantity: quantity, Value: v, Fallback: fallback})
	}
	return fallback
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// safeLog10 never returns NaN or -Inf.
func safeLog10(v float64) float64 {
	if !isFinite(v) || v < 1e-12 {
		return -12
	}
	return math.Log10(v)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundTo(v, step float64) float64 {
	return math.Round(v/step) * step
}
