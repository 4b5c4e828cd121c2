package rules

import "github.com/shopspring/decimal"

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// IncomeTax evaluates the Grundtarif. The income is truncated to full euros
// before the zone formula is applied and the tax is truncated to full euros.
func (t *Table) IncomeTax(taxable decimal.Decimal) decimal.Decimal {
	x := taxable.Floor()
	if !x.IsPositive() {
		return decimal.Zero
	}
	z := t.zoneFor(x)
	y := x.Sub(z.Offset).Div(z.Scale)
	tax := z.Quadratic.Mul(y).Add(z.Linear).Mul(y).Add(z.Constant).Floor()
	if tax.IsNegative() {
		return decimal.Zero
	}
	return tax
}

// SplittingTax evaluates the Splittingtarif: twice the Grundtarif on half the
// joint income.
func (t *Table) SplittingTax(taxable decimal.Decimal) decimal.Decimal {
	return t.IncomeTax(taxable.Div(two).Floor()).Mul(two)
}

func (t *Table) zoneFor(x decimal.Decimal) Zone {
	last := len(t.Tariff) - 1
	for i, z := range t.Tariff {
		if i == last || x.LessThanOrEqual(z.Upper) {
			return z
		}
	}
	return t.Tariff[last]
}

// Surcharge returns the solidarity surcharge on an income tax amount,
// truncated to cents.
func (s Solidarity) Surcharge(incomeTax decimal.Decimal, joint bool) decimal.Decimal {
	exemption := s.ExemptionSingle
	if joint {
		exemption = s.ExemptionJoint
	}
	if incomeTax.LessThanOrEqual(exemption) {
		return decimal.Zero
	}
	full := incomeTax.Mul(s.Rate)
	transition := incomeTax.Sub(exemption).Mul(s.TransitionRate)
	return decimal.Min(full, transition).RoundFloor(2)
}
