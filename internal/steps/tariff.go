package steps

import (
	"tax-engine/internal/model"
	"tax-engine/internal/rules"
)

type TariffStep struct{}

func (s *TariffStep) Validate(*model.TaxReturn, *rules.Table) []model.CalculationMessage {
	return nil
}

func (s *TariffStep) Apply(ws *Worksheet) []model.CalculationMessage {
	if ws.Splitting {
		ws.IncomeTax = ws.Rules.SplittingTax(ws.TaxableIncome)
	} else {
		ws.IncomeTax = ws.Rules.IncomeTax(ws.TaxableIncome)
	}
	return nil
}
