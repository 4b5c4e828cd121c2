package steps

import (
	"github.com/shopspring/decimal"

	"tax-engine/internal/model"
	"tax-engine/internal/money"
	"tax-engine/internal/rules"
)

// DeductionStep computes the Werbungskosten and compares them with the
// statutory lump sum. The higher amount is deducted.
type DeductionStep struct{}

func (s *DeductionStep) Validate(ret *model.TaxReturn, _ *rules.Table) []model.CalculationMessage {
	dd := ret.Deductions
	return nonNegative(
		amount{"deductions.commute_km", dd.CommuteKm},
		amount{"deductions.commute_days", dd.CommuteDays},
		amount{"deductions.home_office_days", dd.HomeOfficeDays},
		amount{"deductions.work_equipment", dd.WorkEquipment},
		amount{"deductions.training_costs", dd.TrainingCosts},
		amount{"deductions.application_costs", dd.ApplicationCosts},
		amount{"deductions.travel_costs", dd.TravelCosts},
		amount{"deductions.moving_costs", dd.MovingCosts},
		amount{"deductions.double_household", dd.DoubleHousehold},
		amount{"deductions.union_fees", dd.UnionFees},
		amount{"deductions.account_fees", dd.AccountFees},
	)
}

func (s *DeductionStep) Apply(ws *Worksheet) []model.CalculationMessage {
	var msgs []model.CalculationMessage
	dd := ws.Return.Deductions
	wr := ws.Rules.WorkRelated

	ws.CommuteAllowance = CommuteAllowance(wr, money.FromFloat(dd.CommuteKm), money.FromFloat(dd.CommuteDays))

	days := money.FromFloat(dd.HomeOfficeDays)
	if days.GreaterThan(wr.HomeOfficeMaxDays) {
		msgs = append(msgs, warning("HOME_OFFICE_DAYS_CAPPED", "deductions.home_office_days",
			"Home office days above "+wr.HomeOfficeMaxDays.String()+" are not deductible"))
		days = wr.HomeOfficeMaxDays
	}
	ws.HomeOfficeAllowance = decimal.Min(days.Mul(wr.HomeOfficeDailyRate), wr.HomeOfficeCap)

	itemized := ws.CommuteAllowance.Add(ws.HomeOfficeAllowance)
	for _, v := range []float64{
		dd.WorkEquipment, dd.TrainingCosts, dd.ApplicationCosts, dd.TravelCosts,
		dd.MovingCosts, dd.DoubleHousehold, dd.UnionFees, dd.AccountFees,
	} {
		itemized = itemized.Add(money.FromFloat(v))
	}
	ws.ItemizedWorkExpenses = itemized
	ws.WorkRelatedDeduction = decimal.Max(itemized, wr.LumpSum)

	return msgs
}

// CommuteAllowance is the Entfernungspauschale: the near rate for the first
// kilometres of the one-way distance, the far rate beyond, per working day.
func CommuteAllowance(wr rules.WorkRelated, km, days decimal.Decimal) decimal.Decimal {
	near := decimal.Min(km, wr.CommuteNearKm).Mul(wr.CommuteNearRate)
	far := decimal.Max(km.Sub(wr.CommuteNearKm), decimal.Zero).Mul(wr.CommuteFarRate)
	return near.Add(far).Mul(days).Round(2)
}
