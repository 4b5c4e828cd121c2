package steps

import (
	"github.com/shopspring/decimal"

	"tax-engine/internal/model"
	"tax-engine/internal/money"
	"tax-engine/internal/rules"
)

// CreditStep computes the §35a Steuerermäßigungen. They reduce the tax bill,
// never the taxable income, and are capped independently.
type CreditStep struct{}

func (s *CreditStep) Validate(ret *model.TaxReturn, _ *rules.Table) []model.CalculationMessage {
	return nonNegative(
		amount{"special_expenses.craftsman_costs", ret.SpecialExpenses.CraftsmanCosts},
		amount{"special_expenses.household_services", ret.SpecialExpenses.HouseholdServices},
	)
}

func (s *CreditStep) Apply(ws *Worksheet) []model.CalculationMessage {
	var msgs []model.CalculationMessage
	cr := ws.Rules.Credits
	se := ws.Return.SpecialExpenses

	var capped bool
	ws.CraftsmanCredit, capped = credit(money.FromFloat(se.CraftsmanCosts), cr.CraftsmanRate, cr.CraftsmanCap)
	if capped {
		msgs = append(msgs, warning("CRAFTSMAN_CREDIT_CAPPED", "special_expenses.craftsman_costs",
			"Craftsman credit is limited to "+cr.CraftsmanCap.String()))
	}
	ws.HouseholdCredit, capped = credit(money.FromFloat(se.HouseholdServices), cr.HouseholdRate, cr.HouseholdCap)
	if capped {
		msgs = append(msgs, warning("HOUSEHOLD_CREDIT_CAPPED", "special_expenses.household_services",
			"Household services credit is limited to "+cr.HouseholdCap.String()))
	}
	return msgs
}

func credit(costs, rate, limit decimal.Decimal) (decimal.Decimal, bool) {
	c := costs.Mul(rate).Round(2)
	if c.GreaterThan(limit) {
		return limit, true
	}
	return c, false
}
