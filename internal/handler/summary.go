package handler

import (
	"math"

	"tax-engine/internal/model"
	"tax-engine/internal/money"
)

// SummaryLines renders a result for the summary page and the PDF export.
func SummaryLines(res *model.TaxResult) []model.SummaryLine {
	settlement := model.SummaryLine{Key: "estimated_refund", Label: "Voraussichtliche Erstattung"}
	if res.EstimatedRefund < 0 {
		settlement.Label = "Voraussichtliche Nachzahlung"
	}
	settlement.Value = money.EUR(math.Abs(res.EstimatedRefund))

	return []model.SummaryLine{
		{Key: "taxable_income", Label: "Zu versteuerndes Einkommen", Value: money.EUR(res.TaxableIncome)},
		{Key: "income_tax", Label: "Einkommensteuer", Value: money.EUR(res.IncomeTax)},
		{Key: "solidarity_surcharge", Label: "Solidaritätszuschlag", Value: money.EUR(res.SolidaritySurcharge)},
		{Key: "church_tax", Label: "Kirchensteuer", Value: money.EUR(res.ChurchTax)},
		{Key: "craftsman_credit", Label: "Steuerermäßigung Handwerkerleistungen", Value: money.EUR(res.CraftsmanCredit)},
		{Key: "household_credit", Label: "Steuerermäßigung haushaltsnahe Dienstleistungen", Value: money.EUR(res.HouseholdCredit)},
		{Key: "total_tax", Label: "Festzusetzende Steuer", Value: money.EUR(res.TotalTax)},
		{Key: "total_already_paid", Label: "Bereits gezahlte Steuern", Value: money.EUR(res.TotalAlreadyPaid)},
		settlement,
		{Key: "effective_tax_rate", Label: "Durchschnittssteuersatz", Value: money.Percent(res.EffectiveTaxRate)},
	}
}
