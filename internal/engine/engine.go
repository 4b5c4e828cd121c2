package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"tax-engine/internal/model"
	"tax-engine/internal/rules"
	"tax-engine/internal/steps"
)

// Engine evaluates tax returns against a fixed set of rule tables. It holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	rules *rules.Registry
}

func New(reg *rules.Registry) *Engine {
	return &Engine{rules: reg}
}

func (e *Engine) Rules() *rules.Registry {
	return e.rules
}

// Compute turns a tax return into its estimated result.
func (e *Engine) Compute(ret *model.TaxReturn) (*model.TaxResult, error) {
	res, _, err := e.Evaluate(ret)
	return res, err
}

// Evaluate is Compute plus the non-fatal warnings raised along the way.
// Every step validates before any step applies, so a failure never yields a
// partial result.
func (e *Engine) Evaluate(ret *model.TaxReturn) (*model.TaxResult, []model.CalculationMessage, error) {
	table, err := e.rules.Lookup(ret.Year)
	if err != nil {
		return nil, nil, err
	}

	pipeline := steps.Pipeline()

	var criticals []model.CalculationMessage
	var msgs []model.CalculationMessage
	for _, s := range pipeline {
		for _, m := range s.Validate(ret, table) {
			if m.Level == model.LevelCritical {
				criticals = append(criticals, m)
			}
			msgs = append(msgs, m)
		}
	}
	if len(criticals) > 0 {
		return nil, msgs, &ValidationError{Messages: criticals}
	}

	ws := steps.NewWorksheet(ret, table)
	for _, s := range pipeline {
		msgs = append(msgs, s.Apply(ws)...)
	}

	return ws.Result(), msgs, nil
}

// Process evaluates a request and wraps the outcome in the response envelope.
func (e *Engine) Process(req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()
	res, msgs, err := e.Evaluate(&req.TaxReturn)
	return Respond(req.TenantID, req.TaxReturn.Year, start, res, msgs, err)
}

func Respond(tenantID string, year int, start time.Time, res *model.TaxResult, msgs []model.CalculationMessage, err error) *model.CalculationResponse {
	if err != nil {
		res = nil
	}
	return &model.CalculationResponse{
		CalculationMetadata: Metadata(tenantID, year, start, Outcome(err)),
		CalculationResult: model.CalculationResult{
			Result:   res,
			Messages: Messages(msgs, err),
		},
	}
}

func Outcome(err error) string {
	if err != nil {
		return model.OutcomeFailure
	}
	return model.OutcomeSuccess
}

// Messages numbers the messages of one calculation and adds a CRITICAL entry
// for failures that did not come with their own.
func Messages(msgs []model.CalculationMessage, err error) []model.CalculationMessage {
	out := make([]model.CalculationMessage, 0, len(msgs)+1)
	out = append(out, msgs...)

	var cfgErr *rules.ConfigurationError
	var valErr *ValidationError
	switch {
	case err == nil:
	case errors.As(err, &cfgErr):
		out = append(out, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "UNSUPPORTED_TAX_YEAR",
			Field:   "year",
			Message: cfgErr.Error(),
		})
	case errors.As(err, &valErr):
	default:
		out = append(out, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "CALCULATION_FAILED",
			Message: err.Error(),
		})
	}

	for i := range out {
		out[i].ID = i
	}
	return out
}

func Metadata(tenantID string, year int, start time.Time, outcome string) model.CalculationMetadata {
	elapsed := time.Since(start)
	now := time.Now().UTC()
	return model.CalculationMetadata{
		CalculationID:          uuid.New().String(),
		TenantID:               tenantID,
		TaxYear:                year,
		CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
		CalculationCompletedAt: now.Format(time.RFC3339),
		CalculationDurationMs:  elapsed.Milliseconds(),
		CalculationOutcome:     outcome,
	}
}
