package payroll

import "math"

// Statutory deduction rates applied to every accrual. They are compiled in on
// purpose: a record's breakdown is computed once at accrual time and stored, so
// a rate change is a code change, never a retroactive recomputation.
const (
	IncomeTaxRate    = 0.18
	MilitaryLevyRate = 0.05
)

// Breakdown is the deduction split for a single gross amount.
type Breakdown struct {
	Gross        float64 `json:"grossAmount"`
	IncomeTax    float64 `json:"incomeTax"`
	MilitaryLevy float64 `json:"militaryLevy"`
	Net          float64 `json:"netAmount"`
}

// Deductions computes the income tax, military levy and net amount for the
// given gross. Negative or non-finite input is treated as zero, so the
// function never fails. Amounts are rounded to kopecks.
func Deductions(gross float64) Breakdown {
	if gross < 0 || math.IsNaN(gross) || math.IsInf(gross, 0) {
		gross = 0
	}
	gross = Round(gross)
	tax := Round(gross * IncomeTaxRate)
	levy := Round(gross * MilitaryLevyRate)
	return Breakdown{
		Gross:        gross,
		IncomeTax:    tax,
		MilitaryLevy: levy,
		Net:          Round(gross - tax - levy),
	}
}

// Round truncates v to currency minor units (2 decimal places, half up).
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}
