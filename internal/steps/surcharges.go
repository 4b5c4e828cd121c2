package steps

import (
	"github.com/shopspring/decimal"

	"tax-engine/internal/model"
	"tax-engine/internal/rules"
)

var hundred = decimal.NewFromInt(100)

// SurchargeStep adds the solidarity surcharge and church tax, both computed
// on the income tax.
type SurchargeStep struct{}

func (s *SurchargeStep) Validate(*model.TaxReturn, *rules.Table) []model.CalculationMessage {
	return nil
}

func (s *SurchargeStep) Apply(ws *Worksheet) []model.CalculationMessage {
	ws.SolidaritySurcharge = ws.Rules.Solidarity.Surcharge(ws.IncomeTax, ws.Splitting)

	ws.ChurchTax = decimal.Zero
	if p := ws.Return.Personal; p.ChurchMember {
		rate := decimal.NewFromInt(int64(p.ChurchTaxRate))
		ws.ChurchTax = ws.IncomeTax.Mul(rate).Div(hundred).RoundFloor(2)
	}
	return nil
}
