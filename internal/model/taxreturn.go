package model

type TaxReturn struct {
	Year            int                  `json:"year"`
	Status          string               `json:"status"`
	Personal        PersonalInfo         `json:"personal"`
	Income          IncomeData           `json:"income"`
	Deductions      DeductionData        `json:"deductions"`
	SpecialExpenses SpecialExpenses      `json:"special_expenses"`
	Extraordinary   ExtraordinaryBurdens `json:"extraordinary"`
}

type PersonalInfo struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	TaxID         string  `json:"tax_id"`
	MaritalStatus string  `json:"marital_status"`
	ChurchMember  bool    `json:"church_member"`
	ChurchTaxRate int     `json:"church_tax_rate"`
	Children      []Child `json:"children"`
	PartnerIncome float64 `json:"partner_income"`
}

type Child struct {
	Name       string `json:"name"`
	BirthDate  string `json:"birth_date"`
	Kindergeld bool   `json:"kindergeld"`
}

type IncomeData struct {
	GrossSalary         float64 `json:"gross_salary"`
	CapitalGains        float64 `json:"capital_gains"`
	RentalIncome        float64 `json:"rental_income"`
	RentalExpenses      float64 `json:"rental_expenses"`
	OtherIncome         float64 `json:"other_income"`
	IncomeTaxPaid       float64 `json:"income_tax_paid"`
	SoliPaid            float64 `json:"soli_paid"`
	ChurchTaxPaid       float64 `json:"church_tax_paid"`
	CapitalGainsTaxPaid float64 `json:"capital_gains_tax_paid"`
}

// DeductionData holds the Werbungskosten inputs. CommuteKm is the one-way distance.
type DeductionData struct {
	CommuteKm        float64 `json:"commute_km"`
	CommuteDays      float64 `json:"commute_days"`
	HomeOfficeDays   float64 `json:"home_office_days"`
	WorkEquipment    float64 `json:"work_equipment"`
	TrainingCosts    float64 `json:"training_costs"`
	ApplicationCosts float64 `json:"application_costs"`
	TravelCosts      float64 `json:"travel_costs"`
	MovingCosts      float64 `json:"moving_costs"`
	DoubleHousehold  float64 `json:"double_household"`
	UnionFees        float64 `json:"union_fees"`
	AccountFees      float64 `json:"account_fees"`
}

// SpecialExpenses holds the Sonderausgaben. CraftsmanCosts and HouseholdServices
// never reduce taxable income; they only generate credits.
type SpecialExpenses struct {
	HealthInsurance       float64 `json:"health_insurance"`
	NursingInsurance      float64 `json:"nursing_insurance"`
	PensionContributions  float64 `json:"pension_contributions"`
	UnemploymentInsurance float64 `json:"unemployment_insurance"`
	RiesterContributions  float64 `json:"riester_contributions"`
	RuerupContributions   float64 `json:"ruerup_contributions"`
	Donations             float64 `json:"donations"`
	ChurchTaxDeduction    float64 `json:"church_tax_deduction"`
	EducationCosts        float64 `json:"education_costs"`
	CraftsmanCosts        float64 `json:"craftsman_costs"`
	HouseholdServices     float64 `json:"household_services"`
}

type ExtraordinaryBurdens struct {
	MedicalCosts     float64 `json:"medical_costs"`
	CareCosts        float64 `json:"care_costs"`
	DisabilityDegree int     `json:"disability_degree"`
	FuneralCosts     float64 `json:"funeral_costs"`
	DisasterCosts    float64 `json:"disaster_costs"`
}

const (
	MaritalSingle   = "single"
	MaritalMarried  = "married"
	MaritalDivorced = "divorced"
	MaritalWidowed  = "widowed"
)

const (
	StatusDraft      = "draft"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Splitting reports whether the joint (Splitting) tariff applies.
func (p PersonalInfo) Splitting() bool {
	return p.MaritalStatus == MaritalMarried
}

// KindergeldChildren counts the children the household receives Kindergeld for.
func (p PersonalInfo) KindergeldChildren() int {
	n := 0
	for _, c := range p.Children {
		if c.Kindergeld {
			n++
		}
	}
	return n
}
