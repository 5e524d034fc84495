package calc

import "fmt"

// CalculationError entrada numérica inválida. Identifica el campo y el valor
// ofensivo para que el llamador pueda corregirlo.
type CalculationError struct {
	Field  string
	Value  string
	Reason string
}

func newCalcError(field, value, reason string) *CalculationError {
	return &CalculationError{Field: field, Value: value, Reason: reason}
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("calc: %s=%s: %s", e.Field, e.Value, e.Reason)
}
