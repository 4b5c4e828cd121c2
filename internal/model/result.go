package model

type TaxResult struct {
	Year                int       `json:"year"`
	TaxableIncome       float64   `json:"taxable_income"`
	IncomeTax           float64   `json:"income_tax"`
	SolidaritySurcharge float64   `json:"solidarity_surcharge"`
	ChurchTax           float64   `json:"church_tax"`
	CraftsmanCredit     float64   `json:"craftsman_credit"`
	HouseholdCredit     float64   `json:"household_credit"`
	TotalTax            float64   `json:"total_tax"`
	TotalAlreadyPaid    float64   `json:"total_already_paid"`
	EstimatedRefund     float64   `json:"estimated_refund"` // positive = refund, negative = owed
	EffectiveTaxRate    float64   `json:"effective_tax_rate"`
	Breakdown           Breakdown `json:"breakdown"`
}

// Breakdown exposes the intermediate figures behind a TaxResult.
type Breakdown struct {
	GrossTotal           float64 `json:"gross_total"`
	PartnerNetIncome     float64 `json:"partner_net_income"`
	CommuteAllowance     float64 `json:"commute_allowance"`
	HomeOfficeAllowance  float64 `json:"home_office_allowance"`
	ItemizedWorkExpenses float64 `json:"itemized_work_expenses"`
	WorkRelatedDeduction float64 `json:"work_related_deduction"`
	SpecialExpensesTotal float64 `json:"special_expenses_total"`
	ExtraordinaryCosts   float64 `json:"extraordinary_costs"`
	ReasonableBurden     float64 `json:"reasonable_burden"`
	DisabilityAllowance  float64 `json:"disability_allowance"`
	ExtraordinaryTotal   float64 `json:"extraordinary_total"`
	Splitting            bool    `json:"splitting"`
}
