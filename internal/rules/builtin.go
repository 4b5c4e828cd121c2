package rules

import "github.com/shopspring/decimal"

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Builtin returns fresh copies of the rule tables compiled into the binary.
func Builtin() []Table {
	return []Table{table2023(), table2024(), table2025()}
}

func table2023() Table {
	t := common(2023)
	t.Tariff = []Zone{
		{Upper: d("10908"), Scale: d("1")},
		{Upper: d("15999"), Offset: d("10908"), Scale: d("10000"), Quadratic: d("979.18"), Linear: d("1400")},
		{Upper: d("62809"), Offset: d("15999"), Scale: d("10000"), Quadratic: d("192.59"), Linear: d("2397"), Constant: d("966.53")},
		{Upper: d("277825"), Scale: d("1"), Linear: d("0.42"), Constant: d("-9972.98")},
		{Scale: d("1"), Linear: d("0.45"), Constant: d("-18307.73")},
	}
	t.Solidarity.ExemptionSingle = d("17543")
	t.Solidarity.ExemptionJoint = d("35086")
	return t
}

func table2024() Table {
	t := common(2024)
	t.Tariff = []Zone{
		{Upper: d("11784"), Scale: d("1")},
		{Upper: d("17005"), Offset: d("11784"), Scale: d("10000"), Quadratic: d("954.80"), Linear: d("1400")},
		{Upper: d("66760"), Offset: d("17005"), Scale: d("10000"), Quadratic: d("181.19"), Linear: d("2397"), Constant: d("991.21")},
		{Upper: d("277825"), Scale: d("1"), Linear: d("0.42"), Constant: d("-10636.31")},
		{Scale: d("1"), Linear: d("0.45"), Constant: d("-18971.06")},
	}
	t.Solidarity.ExemptionSingle = d("18130")
	t.Solidarity.ExemptionJoint = d("36260")
	return t
}

func table2025() Table {
	t := common(2025)
	t.Tariff = []Zone{
		{Upper: d("12096"), Scale: d("1")},
		{Upper: d("17443"), Offset: d("12096"), Scale: d("10000"), Quadratic: d("932.30"), Linear: d("1400")},
		{Upper: d("68480"), Offset: d("17443"), Scale: d("10000"), Quadratic: d("176.64"), Linear: d("2397"), Constant: d("1015.13")},
		{Upper: d("277825"), Scale: d("1"), Linear: d("0.42"), Constant: d("-10911.92")},
		{Scale: d("1"), Linear: d("0.45"), Constant: d("-19246.67")},
	}
	t.Solidarity.ExemptionSingle = d("19950")
	t.Solidarity.ExemptionJoint = d("39900")
	return t
}

// common holds the parameters unchanged since 2023.
func common(year int) Table {
	return Table{
		Year: year,
		Solidarity: Solidarity{
			Rate:           d("0.055"),
			TransitionRate: d("0.119"),
		},
		WorkRelated: WorkRelated{
			LumpSum:             d("1230"),
			CommuteNearKm:       d("20"),
			CommuteNearRate:     d("0.30"),
			CommuteFarRate:      d("0.38"),
			HomeOfficeDailyRate: d("6"),
			HomeOfficeMaxDays:   d("210"),
			HomeOfficeCap:       d("1260"),
		},
		EducationCap: d("6000"),
		Credits: Credits{
			CraftsmanRate: d("0.20"),
			CraftsmanCap:  d("1200"),
			HouseholdRate: d("0.20"),
			HouseholdCap:  d("4000"),
		},
		// §33(3) EStG
		ReasonableBurden: []BurdenBand{
			{Upper: d("15340"), Single: d("5"), Joint: d("4"), OneOrTwoChildren: d("2"), ThreeOrMoreChildren: d("1")},
			{Upper: d("51130"), Single: d("6"), Joint: d("5"), OneOrTwoChildren: d("3"), ThreeOrMoreChildren: d("1")},
			{Single: d("7"), Joint: d("6"), OneOrTwoChildren: d("4"), ThreeOrMoreChildren: d("2")},
		},
		// §33b(3) EStG
		Disability: []DisabilityAllowance{
			{Degree: 20, Amount: d("384")},
			{Degree: 30, Amount: d("620")},
			{Degree: 40, Amount: d("860")},
			{Degree: 50, Amount: d("1140")},
			{Degree: 60, Amount: d("1440")},
			{Degree: 70, Amount: d("1780")},
			{Degree: 80, Amount: d("2120")},
			{Degree: 90, Amount: d("2460")},
			{Degree: 100, Amount: d("2840")},
		},
		ChurchTaxRates: []int{8, 9},
	}
}
