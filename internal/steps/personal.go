package steps

import (
	"fmt"
	"strings"

	"tax-engine/internal/model"
	"tax-engine/internal/rules"
)

type PersonalStep struct{}

func (s *PersonalStep) Validate(ret *model.TaxReturn, table *rules.Table) []model.CalculationMessage {
	var msgs []model.CalculationMessage
	p := ret.Personal

	switch ret.Status {
	case "", model.StatusDraft, model.StatusInProgress, model.StatusCompleted:
	default:
		msgs = append(msgs, critical("INVALID_STATUS", "status",
			fmt.Sprintf("Unknown status %q", ret.Status)))
	}

	switch p.MaritalStatus {
	case "", model.MaritalSingle, model.MaritalMarried, model.MaritalDivorced, model.MaritalWidowed:
	default:
		msgs = append(msgs, critical("INVALID_MARITAL_STATUS", "personal.marital_status",
			fmt.Sprintf("Unknown marital status %q", p.MaritalStatus)))
	}

	if p.ChurchMember && !table.AllowsChurchTaxRate(p.ChurchTaxRate) {
		msgs = append(msgs, critical("INVALID_CHURCH_TAX_RATE", "personal.church_tax_rate",
			fmt.Sprintf("Church tax rate %d%% is not levied in %d", p.ChurchTaxRate, table.Year)))
	}

	msgs = append(msgs, nonNegative(amount{"personal.partner_income", p.PartnerIncome})...)

	// Identity is only mandatory once the return is finalised.
	if ret.Status == model.StatusCompleted {
		for _, f := range []requiredField{
			{"personal.first_name", p.FirstName},
			{"personal.last_name", p.LastName},
			{"personal.tax_id", p.TaxID},
		} {
			if strings.TrimSpace(f.value) == "" {
				msgs = append(msgs, critical("MISSING_IDENTITY", f.field, f.field+" is required for a completed return"))
			}
		}
	}

	return msgs
}

type requiredField struct {
	field string
	value string
}

func (s *PersonalStep) Apply(ws *Worksheet) []model.CalculationMessage {
	p := ws.Return.Personal
	ws.Splitting = p.Splitting()
	ws.Children = p.KindergeldChildren()

	if !ws.Splitting && p.PartnerIncome > 0 {
		return []model.CalculationMessage{warning("PARTNER_INCOME_IGNORED", "personal.partner_income",
			"Partner income only counts for married filers")}
	}
	return nil
}
