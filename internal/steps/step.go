package steps

import (
	"github.com/shopspring/decimal"

	"tax-engine/internal/model"
	"tax-engine/internal/money"
	"tax-engine/internal/rules"
)

// Step defines the contract for every stage of the tax computation.
// Validate inspects the untouched return; Apply runs only after every step
// validated without a CRITICAL message and writes into the worksheet.
type Step interface {
	Validate(ret *model.TaxReturn, table *rules.Table) []model.CalculationMessage
	Apply(ws *Worksheet) []model.CalculationMessage
}

// Worksheet carries the intermediate figures of one computation.
type Worksheet struct {
	Return *model.TaxReturn
	Rules  *rules.Table

	Splitting bool
	Children  int

	PartnerNetIncome     decimal.Decimal
	GrossTotal           decimal.Decimal
	CommuteAllowance     decimal.Decimal
	HomeOfficeAllowance  decimal.Decimal
	ItemizedWorkExpenses decimal.Decimal
	WorkRelatedDeduction decimal.Decimal
	SpecialExpensesTotal decimal.Decimal
	ExtraordinaryCosts   decimal.Decimal
	ReasonableBurden     decimal.Decimal
	DisabilityAllowance  decimal.Decimal
	ExtraordinaryTotal   decimal.Decimal
	TaxableIncome        decimal.Decimal
	IncomeTax            decimal.Decimal
	SolidaritySurcharge  decimal.Decimal
	ChurchTax            decimal.Decimal
	CraftsmanCredit      decimal.Decimal
	HouseholdCredit      decimal.Decimal
	TotalTax             decimal.Decimal
	TotalAlreadyPaid     decimal.Decimal
	EstimatedRefund      decimal.Decimal
	EffectiveTaxRate     decimal.Decimal
}

func NewWorksheet(ret *model.TaxReturn, table *rules.Table) *Worksheet {
	return &Worksheet{Return: ret, Rules: table}
}

// Result freezes the worksheet into the wire result.
func (w *Worksheet) Result() *model.TaxResult {
	return &model.TaxResult{
		Year:                w.Return.Year,
		TaxableIncome:       money.Float(w.TaxableIncome),
		IncomeTax:           money.Float(w.IncomeTax),
		SolidaritySurcharge: money.Float(w.SolidaritySurcharge),
		ChurchTax:           money.Float(w.ChurchTax),
		CraftsmanCredit:     money.Float(w.CraftsmanCredit),
		HouseholdCredit:     money.Float(w.HouseholdCredit),
		TotalTax:            money.Float(w.TotalTax),
		TotalAlreadyPaid:    money.Float(w.TotalAlreadyPaid),
		EstimatedRefund:     money.Float(w.EstimatedRefund),
		EffectiveTaxRate:    money.Float(w.EffectiveTaxRate),
		Breakdown: model.Breakdown{
			GrossTotal:           money.Float(w.GrossTotal),
			PartnerNetIncome:     money.Float(w.PartnerNetIncome),
			CommuteAllowance:     money.Float(w.CommuteAllowance),
			HomeOfficeAllowance:  money.Float(w.HomeOfficeAllowance),
			ItemizedWorkExpenses: money.Float(w.ItemizedWorkExpenses),
			WorkRelatedDeduction: money.Float(w.WorkRelatedDeduction),
			SpecialExpensesTotal: money.Float(w.SpecialExpensesTotal),
			ExtraordinaryCosts:   money.Float(w.ExtraordinaryCosts),
			ReasonableBurden:     money.Float(w.ReasonableBurden),
			DisabilityAllowance:  money.Float(w.DisabilityAllowance),
			ExtraordinaryTotal:   money.Float(w.ExtraordinaryTotal),
			Splitting:            w.Splitting,
		},
	}
}
