package steps

import (
	"math"

	"tax-engine/internal/model"
)

type amount struct {
	field string
	value float64
}

func nonNegative(amounts ...amount) []model.CalculationMessage {
	var msgs []model.CalculationMessage
	for _, a := range amounts {
		switch {
		case math.IsNaN(a.value) || math.IsInf(a.value, 0):
			msgs = append(msgs, critical("INVALID_AMOUNT", a.field, a.field+" must be a finite number"))
		case a.value < 0:
			msgs = append(msgs, critical("NEGATIVE_AMOUNT", a.field, a.field+" must not be negative"))
		}
	}
	return msgs
}

func critical(code, field, message string) model.CalculationMessage {
	return model.CalculationMessage{
		Level:   model.LevelCritical,
		Code:    code,
		Field:   field,
		Message: message,
	}
}

func warning(code, field, message string) model.CalculationMessage {
	return model.CalculationMessage{
		Level:   model.LevelWarning,
		Code:    code,
		Field:   field,
		Message: message,
	}
}
