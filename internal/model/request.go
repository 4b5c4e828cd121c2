package model

type CalculationRequest struct {
	TenantID  string    `json:"tenant_id"`
	TaxReturn TaxReturn `json:"tax_return"`
}

type CompareRequest struct {
	TenantID string    `json:"tenant_id"`
	Base     TaxReturn `json:"base"`
	Scenario TaxReturn `json:"scenario"`
}
