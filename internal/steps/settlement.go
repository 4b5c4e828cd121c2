package steps

import (
	"github.com/shopspring/decimal"

	"tax-engine/internal/model"
	"tax-engine/internal/money"
	"tax-engine/internal/rules"
)

// AlreadyPaidStep sums the tax withheld at source. Capital-gains withholding
// is final (Abgeltungsteuer) and stays out of the settlement.
type AlreadyPaidStep struct{}

func (s *AlreadyPaidStep) Validate(ret *model.TaxReturn, _ *rules.Table) []model.CalculationMessage {
	in := ret.Income
	return nonNegative(
		amount{"income.income_tax_paid", in.IncomeTaxPaid},
		amount{"income.soli_paid", in.SoliPaid},
		amount{"income.church_tax_paid", in.ChurchTaxPaid},
		amount{"income.capital_gains_tax_paid", in.CapitalGainsTaxPaid},
	)
}

func (s *AlreadyPaidStep) Apply(ws *Worksheet) []model.CalculationMessage {
	in := ws.Return.Income
	ws.TotalAlreadyPaid = money.FromFloat(in.IncomeTaxPaid).
		Add(money.FromFloat(in.SoliPaid)).
		Add(money.FromFloat(in.ChurchTaxPaid))

	if in.CapitalGainsTaxPaid > 0 {
		return []model.CalculationMessage{warning("CAPITAL_GAINS_TAX_EXCLUDED", "income.capital_gains_tax_paid",
			"Capital gains tax withheld is not credited against the estimate")}
	}
	return nil
}

// SettlementStep derives the total tax, the refund (positive) or payment
// (negative) and the effective rate.
type SettlementStep struct{}

func (s *SettlementStep) Validate(*model.TaxReturn, *rules.Table) []model.CalculationMessage {
	return nil
}

func (s *SettlementStep) Apply(ws *Worksheet) []model.CalculationMessage {
	total := ws.IncomeTax.
		Add(ws.SolidaritySurcharge).
		Add(ws.ChurchTax).
		Sub(ws.CraftsmanCredit).
		Sub(ws.HouseholdCredit)
	ws.TotalTax = decimal.Max(total, decimal.Zero)
	ws.EstimatedRefund = ws.TotalAlreadyPaid.Sub(ws.TotalTax)

	ws.EffectiveTaxRate = decimal.Zero
	if ws.TaxableIncome.IsPositive() {
		ws.EffectiveTaxRate = ws.TotalTax.Div(ws.TaxableIncome).Mul(hundred).Round(1)
	}
	return nil
}
