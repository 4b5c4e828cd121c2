package steps

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tax-engine/internal/model"
	"tax-engine/internal/money"
	"tax-engine/internal/rules"
)

// TaxableIncomeStep subtracts the work-related deduction, the Sonderausgaben
// and the außergewöhnliche Belastungen from the gross total.
type TaxableIncomeStep struct{}

func (s *TaxableIncomeStep) Validate(ret *model.TaxReturn, _ *rules.Table) []model.CalculationMessage {
	se := ret.SpecialExpenses
	ex := ret.Extraordinary
	msgs := nonNegative(
		amount{"special_expenses.health_insurance", se.HealthInsurance},
		amount{"special_expenses.nursing_insurance", se.NursingInsurance},
		amount{"special_expenses.pension_contributions", se.PensionContributions},
		amount{"special_expenses.unemployment_insurance", se.UnemploymentInsurance},
		amount{"special_expenses.riester_contributions", se.RiesterContributions},
		amount{"special_expenses.ruerup_contributions", se.RuerupContributions},
		amount{"special_expenses.donations", se.Donations},
		amount{"special_expenses.church_tax_deduction", se.ChurchTaxDeduction},
		amount{"special_expenses.education_costs", se.EducationCosts},
		amount{"extraordinary.medical_costs", ex.MedicalCosts},
		amount{"extraordinary.care_costs", ex.CareCosts},
		amount{"extraordinary.funeral_costs", ex.FuneralCosts},
		amount{"extraordinary.disaster_costs", ex.DisasterCosts},
	)
	if ex.DisabilityDegree < 0 || ex.DisabilityDegree > 100 {
		msgs = append(msgs, critical("INVALID_DISABILITY_DEGREE", "extraordinary.disability_degree",
			fmt.Sprintf("Disability degree %d is outside 0..100", ex.DisabilityDegree)))
	}
	return msgs
}

func (s *TaxableIncomeStep) Apply(ws *Worksheet) []model.CalculationMessage {
	var msgs []model.CalculationMessage
	se := ws.Return.SpecialExpenses
	ex := ws.Return.Extraordinary

	education := money.FromFloat(se.EducationCosts)
	if education.GreaterThan(ws.Rules.EducationCap) {
		msgs = append(msgs, warning("EDUCATION_COSTS_CAPPED", "special_expenses.education_costs",
			"Education costs are deductible up to "+ws.Rules.EducationCap.String()))
		education = ws.Rules.EducationCap
	}
	special := education
	for _, v := range []float64{
		se.HealthInsurance, se.NursingInsurance, se.PensionContributions, se.UnemploymentInsurance,
		se.RiesterContributions, se.RuerupContributions, se.Donations, se.ChurchTaxDeduction,
	} {
		special = special.Add(money.FromFloat(v))
	}
	ws.SpecialExpensesTotal = special

	costs := money.FromFloat(ex.MedicalCosts).
		Add(money.FromFloat(ex.CareCosts)).
		Add(money.FromFloat(ex.FuneralCosts)).
		Add(money.FromFloat(ex.DisasterCosts))
	ws.ExtraordinaryCosts = costs

	// The reasonable self-burden is measured on the income after work-related
	// expenses and only reduces the itemized costs, not the disability lump sum.
	income := decimal.Max(ws.GrossTotal.Sub(ws.WorkRelatedDeduction), decimal.Zero)
	ws.ReasonableBurden = ws.Rules.ReasonableBurdenFor(income, ws.Splitting, ws.Children)
	ws.DisabilityAllowance = ws.Rules.DisabilityLumpSum(ex.DisabilityDegree)
	ws.ExtraordinaryTotal = decimal.Max(costs.Sub(ws.ReasonableBurden), decimal.Zero).Add(ws.DisabilityAllowance)

	taxable := ws.GrossTotal.
		Sub(ws.WorkRelatedDeduction).
		Sub(ws.SpecialExpensesTotal).
		Sub(ws.ExtraordinaryTotal)
	ws.TaxableIncome = decimal.Max(taxable, decimal.Zero).Round(2)

	return msgs
}
