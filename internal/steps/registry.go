package steps

// pipeline is the fixed evaluation order. Later steps read what earlier ones wrote.
var pipeline = []Step{
	&PersonalStep{},
	&IncomeStep{},
	&DeductionStep{},
	&TaxableIncomeStep{},
	&TariffStep{},
	&SurchargeStep{},
	&CreditStep{},
	&AlreadyPaidStep{},
	&SettlementStep{},
}

func Pipeline() []Step {
	return pipeline
}
