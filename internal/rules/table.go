package rules

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Table holds every statutory parameter the engine needs for one tax year.
// Tables handed out by a Registry are shared and must not be modified.
type Table struct {
	Year             int                   `json:"year"`
	Tariff           []Zone                `json:"tariff"`
	Solidarity       Solidarity            `json:"solidarity"`
	WorkRelated      WorkRelated           `json:"work_related"`
	EducationCap     decimal.Decimal       `json:"education_cap"`
	Credits          Credits               `json:"credits"`
	ReasonableBurden []BurdenBand          `json:"reasonable_burden"`
	Disability       []DisabilityAllowance `json:"disability_allowances"`
	ChurchTaxRates   []int                 `json:"church_tax_rates"`
}

// Zone is one piece of the §32a tariff:
//
//	tax = (Quadratic*y + Linear)*y + Constant,  y = (x - Offset) / Scale
//
// A zone covers incomes up to and including Upper. The last zone is open-ended
// and its Upper is ignored.
type Zone struct {
	Upper     decimal.Decimal `json:"upper"`
	Offset    decimal.Decimal `json:"offset"`
	Scale     decimal.Decimal `json:"scale"`
	Quadratic decimal.Decimal `json:"quadratic"`
	Linear    decimal.Decimal `json:"linear"`
	Constant  decimal.Decimal `json:"constant"`
}

// Solidarity describes the Solidaritätszuschlag. No surcharge is due while the
// income tax stays at or below the exemption; above it the surcharge phases in
// at TransitionRate of the excess until it reaches Rate of the full tax.
type Solidarity struct {
	Rate            decimal.Decimal `json:"rate"`
	TransitionRate  decimal.Decimal `json:"transition_rate"`
	ExemptionSingle decimal.Decimal `json:"exemption_single"`
	ExemptionJoint  decimal.Decimal `json:"exemption_joint"`
}

type WorkRelated struct {
	LumpSum             decimal.Decimal `json:"lump_sum"`
	CommuteNearKm       decimal.Decimal `json:"commute_near_km"`
	CommuteNearRate     decimal.Decimal `json:"commute_near_rate"`
	CommuteFarRate      decimal.Decimal `json:"commute_far_rate"`
	HomeOfficeDailyRate decimal.Decimal `json:"home_office_daily_rate"`
	HomeOfficeMaxDays   decimal.Decimal `json:"home_office_max_days"`
	HomeOfficeCap       decimal.Decimal `json:"home_office_cap"`
}

type Credits struct {
	CraftsmanRate decimal.Decimal `json:"craftsman_rate"`
	CraftsmanCap  decimal.Decimal `json:"craftsman_cap"`
	HouseholdRate decimal.Decimal `json:"household_rate"`
	HouseholdCap  decimal.Decimal `json:"household_cap"`
}

// BurdenBand is one income band of the reasonable self-burden, with the
// percentage applied to the part of the income inside the band for each
// household category. The last band is open-ended.
type BurdenBand struct {
	Upper               decimal.Decimal `json:"upper"`
	Single              decimal.Decimal `json:"single"`
	Joint               decimal.Decimal `json:"joint"`
	OneOrTwoChildren    decimal.Decimal `json:"one_or_two_children"`
	ThreeOrMoreChildren decimal.Decimal `json:"three_or_more_children"`
}

type DisabilityAllowance struct {
	Degree int             `json:"degree"`
	Amount decimal.Decimal `json:"amount"`
}

// Validate checks the structural soundness of a table loaded from outside.
func (t *Table) Validate() error {
	if t.Year <= 0 {
		return fmt.Errorf("invalid year %d", t.Year)
	}
	if len(t.Tariff) == 0 {
		return errors.New("tariff has no zones")
	}
	for i, z := range t.Tariff {
		if !z.Scale.IsPositive() {
			return fmt.Errorf("tariff zone %d: scale must be positive", i)
		}
		if i > 0 && i < len(t.Tariff)-1 && !z.Upper.GreaterThan(t.Tariff[i-1].Upper) {
			return fmt.Errorf("tariff zone %d: upper bound must be ascending", i)
		}
	}
	if len(t.ReasonableBurden) == 0 {
		return errors.New("reasonable burden has no bands")
	}
	for i := 1; i < len(t.ReasonableBurden)-1; i++ {
		if !t.ReasonableBurden[i].Upper.GreaterThan(t.ReasonableBurden[i-1].Upper) {
			return fmt.Errorf("reasonable burden band %d: upper bound must be ascending", i)
		}
	}
	for i := 1; i < len(t.Disability); i++ {
		if t.Disability[i].Degree <= t.Disability[i-1].Degree {
			return fmt.Errorf("disability allowance %d: degrees must be ascending", i)
		}
	}
	if len(t.ChurchTaxRates) == 0 {
		return errors.New("no church tax rates")
	}
	if t.WorkRelated.LumpSum.IsNegative() || t.EducationCap.IsNegative() {
		return errors.New("allowances must not be negative")
	}
	return nil
}

// AllowsChurchTaxRate reports whether rate (in percent) is levied in the year.
func (t *Table) AllowsChurchTaxRate(rate int) bool {
	for _, r := range t.ChurchTaxRates {
		if r == rate {
			return true
		}
	}
	return false
}

// DisabilityLumpSum returns the §33b allowance for a degree of disability,
// taking the highest table entry not above degree. Degrees below the first
// entry yield zero.
func (t *Table) DisabilityLumpSum(degree int) decimal.Decimal {
	amount := decimal.Zero
	for _, a := range t.Disability {
		if a.Degree > degree {
			break
		}
		amount = a.Amount
	}
	return amount
}

// ReasonableBurdenFor computes the zumutbare Belastung stepwise over the bands.
func (t *Table) ReasonableBurdenFor(income decimal.Decimal, joint bool, children int) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	burden := decimal.Zero
	lower := decimal.Zero
	for i, b := range t.ReasonableBurden {
		upper := income
		if i < len(t.ReasonableBurden)-1 {
			upper = decimal.Min(income, b.Upper)
		}
		portion := upper.Sub(lower)
		if !portion.IsPositive() {
			break
		}
		burden = burden.Add(portion.Mul(b.percent(joint, children)).Div(hundred))
		lower = b.Upper
	}
	return burden.Round(2)
}

func (b BurdenBand) percent(joint bool, children int) decimal.Decimal {
	switch {
	case children >= 3:
		return b.ThreeOrMoreChildren
	case children >= 1:
		return b.OneOrTwoChildren
	case joint:
		return b.Joint
	default:
		return b.Single
	}
}
