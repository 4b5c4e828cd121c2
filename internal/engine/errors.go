package engine

import (
	"fmt"

	"tax-engine/internal/model"
)

// ValidationError reports malformed input. Messages holds every CRITICAL
// finding, each naming the offending field.
type ValidationError struct {
	Messages []model.CalculationMessage
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation failed"
	}
	first := e.Messages[0]
	if len(e.Messages) == 1 {
		return fmt.Sprintf("validation failed: %s: %s", first.Field, first.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (and %d more)", first.Field, first.Message, len(e.Messages)-1)
}

// Field names the first offending input field.
func (e *ValidationError) Field() string {
	if len(e.Messages) == 0 {
		return ""
	}
	return e.Messages[0].Field
}
