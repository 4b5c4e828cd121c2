package model

type CalculationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationResult   `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	TenantID               string `json:"tenant_id"`
	TaxYear                int    `json:"tax_year"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type CalculationResult struct {
	Result   *TaxResult           `json:"result"`
	Messages []CalculationMessage `json:"messages"`
}

type SummaryResponse struct {
	CalculationMetadata CalculationMetadata  `json:"calculation_metadata"`
	Lines               []SummaryLine        `json:"lines"`
	Messages            []CalculationMessage `json:"messages"`
}

// SummaryLine is one display row with a German-locale formatted value.
type SummaryLine struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type CompareResponse struct {
	CalculationMetadata CalculationMetadata  `json:"calculation_metadata"`
	Base                *TaxResult           `json:"base"`
	Scenario            *TaxResult           `json:"scenario"`
	Changes             []PatchOperation     `json:"changes"`
	Messages            []CalculationMessage `json:"messages"`
}

// PatchOperation is an RFC 6902 operation. Previous carries the replaced value.
type PatchOperation struct {
	Op       string      `json:"op"`
	Path     string      `json:"path"`
	Value    interface{} `json:"value,omitempty"`
	Previous interface{} `json:"previous,omitempty"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
