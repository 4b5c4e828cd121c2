package engine

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tax-engine/internal/model"
	"tax-engine/internal/rules"
)

func newEngine() *Engine {
	return New(rules.Default())
}

func singleReturn(salary float64) *model.TaxReturn {
	return &model.TaxReturn{
		Year:     2025,
		Status:   model.StatusDraft,
		Personal: model.PersonalInfo{MaritalStatus: model.MaritalSingle},
		Income:   model.IncomeData{GrossSalary: salary},
	}
}

func compute(t *testing.T, ret *model.TaxReturn) *model.TaxResult {
	t.Helper()
	res, err := newEngine().Compute(ret)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

// Single filer, salary only: the lump sum is the only deduction.
func TestComputeSingleSalary(t *testing.T) {
	ret := singleReturn(40000)
	ret.Income.IncomeTaxPaid = 6000

	res := compute(t, ret)

	assert.Equal(t, 38770.0, res.TaxableIncome)
	assert.Equal(t, 6930.0, res.IncomeTax)
	assert.Equal(t, 0.0, res.SolidaritySurcharge)
	assert.Equal(t, 0.0, res.ChurchTax)
	assert.Equal(t, 6930.0, res.TotalTax)
	assert.Equal(t, 6000.0, res.TotalAlreadyPaid)
	assert.Equal(t, -930.0, res.EstimatedRefund)
	assert.Equal(t, 17.9, res.EffectiveTaxRate)
	assert.Equal(t, 1230.0, res.Breakdown.WorkRelatedDeduction)
}

func TestStandardAllowanceWithoutItemizedExpenses(t *testing.T) {
	res := compute(t, singleReturn(30000))
	assert.Equal(t, 0.0, res.Breakdown.ItemizedWorkExpenses)
	assert.Equal(t, 1230.0, res.Breakdown.WorkRelatedDeduction)
}

func TestItemizedBeatsLumpSum(t *testing.T) {
	ret := singleReturn(40000)
	ret.Deductions = model.DeductionData{CommuteKm: 25, CommuteDays: 220, HomeOfficeDays: 10, UnionFees: 100}

	res := compute(t, ret)

	assert.Equal(t, 1738.0, res.Breakdown.CommuteAllowance)
	assert.Equal(t, 60.0, res.Breakdown.HomeOfficeAllowance)
	assert.Equal(t, 1898.0, res.Breakdown.ItemizedWorkExpenses)
	assert.Equal(t, 1898.0, res.Breakdown.WorkRelatedDeduction)
	assert.Equal(t, 38102.0, res.TaxableIncome)
}

func TestHomeOfficeCapped(t *testing.T) {
	ret := singleReturn(40000)
	ret.Deductions.HomeOfficeDays = 250

	res, msgs, err := newEngine().Evaluate(ret)
	require.NoError(t, err)
	assert.Equal(t, 1260.0, res.Breakdown.HomeOfficeAllowance)
	assert.Equal(t, 1260.0, res.Breakdown.WorkRelatedDeduction)
	assert.Contains(t, codes(msgs), "HOME_OFFICE_DAYS_CAPPED")
}

func TestZeroIncome(t *testing.T) {
	res := compute(t, &model.TaxReturn{Year: 2025})

	assert.Equal(t, 0.0, res.TaxableIncome)
	assert.Equal(t, 0.0, res.IncomeTax)
	assert.Equal(t, 0.0, res.TotalTax)
	assert.Equal(t, 0.0, res.EstimatedRefund)
	assert.Equal(t, 0.0, res.EffectiveTaxRate)
}

func TestSpecialExpensesWithEducationCap(t *testing.T) {
	ret := singleReturn(40000)
	ret.SpecialExpenses = model.SpecialExpenses{HealthInsurance: 3000, EducationCosts: 8000}

	res, msgs, err := newEngine().Evaluate(ret)
	require.NoError(t, err)
	assert.Equal(t, 9000.0, res.Breakdown.SpecialExpensesTotal)
	assert.Equal(t, 29770.0, res.TaxableIncome)
	assert.Equal(t, 4238.0, res.IncomeTax)
	assert.Contains(t, codes(msgs), "EDUCATION_COSTS_CAPPED")
}

func TestExtraordinaryBurdens(t *testing.T) {
	ret := singleReturn(40000)
	ret.Extraordinary.MedicalCosts = 5000

	res := compute(t, ret)
	assert.Equal(t, 2172.8, res.Breakdown.ReasonableBurden)
	assert.Equal(t, 2827.2, res.Breakdown.ExtraordinaryTotal)
	assert.Equal(t, 35942.8, res.TaxableIncome)
	assert.Equal(t, 6053.0, res.IncomeTax)
	assert.Equal(t, 16.8, res.EffectiveTaxRate)

	ret.Extraordinary.DisabilityDegree = 50
	res = compute(t, ret)
	assert.Equal(t, 1140.0, res.Breakdown.DisabilityAllowance)
	assert.Equal(t, 34802.8, res.TaxableIncome)
	assert.Equal(t, 5708.0, res.IncomeTax)
}

func TestCostsBelowReasonableBurden(t *testing.T) {
	ret := singleReturn(40000)
	ret.Extraordinary.MedicalCosts = 1000

	res := compute(t, ret)
	assert.Equal(t, 0.0, res.Breakdown.ExtraordinaryTotal)
	assert.Equal(t, 38770.0, res.TaxableIncome)
}

func TestDisabilityThreshold(t *testing.T) {
	ret := singleReturn(40000)

	ret.Extraordinary.DisabilityDegree = 15
	assert.Equal(t, 0.0, compute(t, ret).Breakdown.DisabilityAllowance)

	ret.Extraordinary.DisabilityDegree = 20
	assert.Equal(t, 384.0, compute(t, ret).Breakdown.DisabilityAllowance)
}

func TestSurcharges(t *testing.T) {
	ret := singleReturn(100000)
	ret.Personal.ChurchMember = true
	ret.Personal.ChurchTaxRate = 9

	res := compute(t, ret)
	assert.Equal(t, 98770.0, res.TaxableIncome)
	assert.Equal(t, 30571.0, res.IncomeTax)
	assert.Equal(t, 1263.89, res.SolidaritySurcharge)
	assert.Equal(t, 2751.39, res.ChurchTax)
	assert.Equal(t, 34586.28, res.TotalTax)
	assert.Equal(t, 35.0, res.EffectiveTaxRate)
}

func TestCredits(t *testing.T) {
	ret := singleReturn(40000)
	ret.SpecialExpenses.CraftsmanCosts = 10000
	ret.SpecialExpenses.HouseholdServices = 5000

	res, msgs, err := newEngine().Evaluate(ret)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, res.CraftsmanCredit)
	assert.Equal(t, 1000.0, res.HouseholdCredit)
	assert.Equal(t, 38770.0, res.TaxableIncome, "credits never reduce taxable income")
	assert.Equal(t, 4730.0, res.TotalTax)
	assert.Contains(t, codes(msgs), "CRAFTSMAN_CREDIT_CAPPED")
	assert.NotContains(t, codes(msgs), "HOUSEHOLD_CREDIT_CAPPED")
}

func TestCreditCapsAreIdempotent(t *testing.T) {
	ret := singleReturn(200000)
	for _, costs := range []float64{6000, 7000, 50000} {
		ret.SpecialExpenses.CraftsmanCosts = costs
		assert.Equal(t, 1200.0, compute(t, ret).CraftsmanCredit)
	}
	for _, costs := range []float64{20000, 25000, 1e6} {
		ret.SpecialExpenses.HouseholdServices = costs
		assert.Equal(t, 4000.0, compute(t, ret).HouseholdCredit)
	}
}

func TestTotalTaxFloorsAtZero(t *testing.T) {
	ret := singleReturn(20000)
	ret.SpecialExpenses.HouseholdServices = 20000
	ret.Income.IncomeTaxPaid = 500

	res := compute(t, ret)
	assert.Equal(t, 0.0, res.TotalTax)
	assert.Equal(t, 500.0, res.EstimatedRefund)
}

func TestRefundSign(t *testing.T) {
	ret := singleReturn(40000)

	ret.Income.IncomeTaxPaid = 8000
	assert.Greater(t, compute(t, ret).EstimatedRefund, 0.0)

	ret.Income.IncomeTaxPaid = 1000
	assert.Less(t, compute(t, ret).EstimatedRefund, 0.0)
}

func TestCapitalGainsWithholdingExcluded(t *testing.T) {
	ret := singleReturn(40000)
	ret.Income.IncomeTaxPaid = 6000
	ret.Income.CapitalGainsTaxPaid = 250

	res, msgs, err := newEngine().Evaluate(ret)
	require.NoError(t, err)
	assert.Equal(t, 6000.0, res.TotalAlreadyPaid)
	assert.Contains(t, codes(msgs), "CAPITAL_GAINS_TAX_EXCLUDED")
}

func TestRentalLossNotOffset(t *testing.T) {
	ret := singleReturn(40000)
	ret.Income.RentalIncome = 5000
	ret.Income.RentalExpenses = 8000

	res, msgs, err := newEngine().Evaluate(ret)
	require.NoError(t, err)
	assert.Equal(t, 40000.0, res.Breakdown.GrossTotal)
	assert.Contains(t, codes(msgs), "RENTAL_LOSS_NOT_OFFSET")
}

func TestSplittingBenefit(t *testing.T) {
	married := singleReturn(60000)
	married.Personal.MaritalStatus = model.MaritalMarried
	married.Personal.PartnerIncome = 20000

	joint := compute(t, married)
	assert.True(t, joint.Breakdown.Splitting)
	assert.Equal(t, 77540.0, joint.TaxableIncome)
	assert.Equal(t, 13860.0, joint.IncomeTax)

	a := compute(t, singleReturn(60000))
	b := compute(t, singleReturn(20000))
	assert.LessOrEqual(t, joint.IncomeTax, a.IncomeTax+b.IncomeTax)
}

func TestPartnerIncomeIgnoredWhenNotMarried(t *testing.T) {
	ret := singleReturn(40000)
	ret.Personal.PartnerIncome = 30000

	res, msgs, err := newEngine().Evaluate(ret)
	require.NoError(t, err)
	assert.Equal(t, 38770.0, res.TaxableIncome)
	assert.Contains(t, codes(msgs), "PARTNER_INCOME_IGNORED")
}

func TestIncomeTaxMonotonicInSalary(t *testing.T) {
	eng := newEngine()
	prev := 0.0
	for salary := 0.0; salary <= 300000; salary += 997 {
		res, err := eng.Compute(singleReturn(salary))
		require.NoError(t, err)
		require.GreaterOrEqual(t, res.IncomeTax, prev, "salary %.0f", salary)
		prev = res.IncomeTax
	}
}

func TestYearSelectsTable(t *testing.T) {
	ret := singleReturn(40000)
	ret.Year = 2024
	assert.Equal(t, 7066.0, compute(t, ret).IncomeTax)

	ret.Year = 2023
	assert.Equal(t, 7423.0, compute(t, ret).IncomeTax)
}

func TestUnknownYear(t *testing.T) {
	ret := singleReturn(40000)
	ret.Year = 2031

	res, err := newEngine().Compute(ret)
	assert.Nil(t, res)

	var cfgErr *rules.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, 2031, cfgErr.Year)
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.TaxReturn)
		field  string
		code   string
	}{
		{"negative salary", func(r *model.TaxReturn) { r.Income.GrossSalary = -1 }, "income.gross_salary", "NEGATIVE_AMOUNT"},
		{"negative deduction", func(r *model.TaxReturn) { r.Deductions.UnionFees = -5 }, "deductions.union_fees", "NEGATIVE_AMOUNT"},
		{"negative paid", func(r *model.TaxReturn) { r.Income.SoliPaid = -5 }, "income.soli_paid", "NEGATIVE_AMOUNT"},
		{"negative credit costs", func(r *model.TaxReturn) { r.SpecialExpenses.CraftsmanCosts = -5 }, "special_expenses.craftsman_costs", "NEGATIVE_AMOUNT"},
		{"church rate", func(r *model.TaxReturn) {
			r.Personal.ChurchMember = true
			r.Personal.ChurchTaxRate = 7
		}, "personal.church_tax_rate", "INVALID_CHURCH_TAX_RATE"},
		{"disability degree", func(r *model.TaxReturn) { r.Extraordinary.DisabilityDegree = 120 }, "extraordinary.disability_degree", "INVALID_DISABILITY_DEGREE"},
		{"negative disability degree", func(r *model.TaxReturn) { r.Extraordinary.DisabilityDegree = -10 }, "extraordinary.disability_degree", "INVALID_DISABILITY_DEGREE"},
		{"marital status", func(r *model.TaxReturn) { r.Personal.MaritalStatus = "engaged" }, "personal.marital_status", "INVALID_MARITAL_STATUS"},
		{"status", func(r *model.TaxReturn) { r.Status = "archived" }, "status", "INVALID_STATUS"},
		{"completed without identity", func(r *model.TaxReturn) { r.Status = model.StatusCompleted }, "personal.first_name", "MISSING_IDENTITY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ret := singleReturn(40000)
			tt.mutate(ret)

			res, err := newEngine().Compute(ret)
			assert.Nil(t, res)

			var valErr *ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.field, valErr.Field())
			assert.Equal(t, tt.code, valErr.Messages[0].Code)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestChurchRateIgnoredForNonMembers(t *testing.T) {
	ret := singleReturn(40000)
	ret.Personal.ChurchTaxRate = 7
	assert.Equal(t, 0.0, compute(t, ret).ChurchTax)
}

func TestCompletedReturnWithIdentity(t *testing.T) {
	ret := singleReturn(40000)
	ret.Status = model.StatusCompleted
	ret.Personal.FirstName = "Erika"
	ret.Personal.LastName = "Mustermann"
	ret.Personal.TaxID = "12345678901"

	compute(t, ret)
}

func TestComputeIsDeterministicAndPure(t *testing.T) {
	ret := singleReturn(52000)
	ret.Deductions.CommuteKm = 31
	ret.Deductions.CommuteDays = 180
	ret.Personal.Children = []model.Child{{Name: "Max", BirthDate: "2015-04-01", Kindergeld: true}}
	ret.Extraordinary.MedicalCosts = 4000
	before := *ret
	before.Personal.Children = append([]model.Child(nil), ret.Personal.Children...)

	first := compute(t, ret)
	second := compute(t, ret)
	assert.Equal(t, first, second)
	assert.Equal(t, before, *ret)
}

func TestComputeConcurrently(t *testing.T) {
	eng := newEngine()
	want, err := eng.Compute(singleReturn(40000))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*model.TaxResult, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = eng.Compute(singleReturn(40000))
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestProcessSuccess(t *testing.T) {
	req := &model.CalculationRequest{TenantID: "test-tenant", TaxReturn: *singleReturn(40000)}

	resp := newEngine().Process(req)

	assert.Equal(t, model.OutcomeSuccess, resp.CalculationMetadata.CalculationOutcome)
	assert.Equal(t, "test-tenant", resp.CalculationMetadata.TenantID)
	assert.Equal(t, 2025, resp.CalculationMetadata.TaxYear)
	assert.NotEmpty(t, resp.CalculationMetadata.CalculationID)
	require.NotNil(t, resp.CalculationResult.Result)
	assert.Equal(t, 6930.0, resp.CalculationResult.Result.IncomeTax)
	assert.NotNil(t, resp.CalculationResult.Messages)
	assert.Empty(t, resp.CalculationResult.Messages)
}

func TestProcessFailure(t *testing.T) {
	ret := singleReturn(-1)
	ret.Extraordinary.DisabilityDegree = 101
	req := &model.CalculationRequest{TenantID: "test-tenant", TaxReturn: *ret}

	resp := newEngine().Process(req)

	assert.Equal(t, model.OutcomeFailure, resp.CalculationMetadata.CalculationOutcome)
	assert.Nil(t, resp.CalculationResult.Result)
	require.Len(t, resp.CalculationResult.Messages, 2)
	for i, m := range resp.CalculationResult.Messages {
		assert.Equal(t, i, m.ID)
		assert.Equal(t, model.LevelCritical, m.Level)
	}
}

func TestProcessUnknownYear(t *testing.T) {
	ret := singleReturn(40000)
	ret.Year = 2019

	resp := newEngine().Process(&model.CalculationRequest{TaxReturn: *ret})

	assert.Equal(t, model.OutcomeFailure, resp.CalculationMetadata.CalculationOutcome)
	require.Len(t, resp.CalculationResult.Messages, 1)
	assert.Equal(t, "UNSUPPORTED_TAX_YEAR", resp.CalculationResult.Messages[0].Code)
}

func codes(msgs []model.CalculationMessage) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Code)
	}
	return out
}
