package steps

import (
	"github.com/shopspring/decimal"

	"tax-engine/internal/model"
	"tax-engine/internal/money"
	"tax-engine/internal/rules"
)

type IncomeStep struct{}

func (s *IncomeStep) Validate(ret *model.TaxReturn, _ *rules.Table) []model.CalculationMessage {
	in := ret.Income
	return nonNegative(
		amount{"income.gross_salary", in.GrossSalary},
		amount{"income.capital_gains", in.CapitalGains},
		amount{"income.rental_income", in.RentalIncome},
		amount{"income.rental_expenses", in.RentalExpenses},
		amount{"income.other_income", in.OtherIncome},
	)
}

func (s *IncomeStep) Apply(ws *Worksheet) []model.CalculationMessage {
	var msgs []model.CalculationMessage
	in := ws.Return.Income

	rental := money.FromFloat(in.RentalIncome).Sub(money.FromFloat(in.RentalExpenses))
	if rental.IsNegative() {
		msgs = append(msgs, warning("RENTAL_LOSS_NOT_OFFSET", "income.rental_expenses",
			"Rental expenses exceed rental income; the loss is not offset against other income"))
		rental = decimal.Zero
	}

	gross := money.FromFloat(in.GrossSalary).
		Add(money.FromFloat(in.CapitalGains)).
		Add(rental).
		Add(money.FromFloat(in.OtherIncome))

	// The spouse is credited with the standard work-related lump sum only;
	// their itemized expenses are not part of the return.
	if ws.Splitting {
		partner := money.FromFloat(ws.Return.Personal.PartnerIncome).Sub(ws.Rules.WorkRelated.LumpSum)
		ws.PartnerNetIncome = decimal.Max(partner, decimal.Zero)
		gross = gross.Add(ws.PartnerNetIncome)
	}

	ws.GrossTotal = gross
	return msgs
}
