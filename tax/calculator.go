// Package tax computes slab-based income tax under the old and new
// Indian regimes. All functions are pure; statutory amounts come in via
// config.TaxParams so they can be revised per assessment year.
package tax

import (
	"fmt"
	"math"

	"github.com/zenilop-regex/ai-tax-agent/config"
)

// Slab is one marginal bracket: income between the previous bound and
// UpperBound is taxed at Rate.
type Slab struct {
	UpperBound int
	Rate       float64
}

// Bracket tables. Upper bounds are cumulative; the last entry is open.
var (
	OldRegimeSlabs = []Slab{
		{250000, 0.0},
		{500000, 0.05},
		{1000000, 0.20},
		{math.MaxInt, 0.30},
	}

	NewRegimeSlabs = []Slab{
		{300000, 0.0},
		{600000, 0.05},
		{900000, 0.10},
		{1200000, 0.15},
		{1500000, 0.20},
		{math.MaxInt, 0.30},
	}
)

// Breakdown is the full result of a single-regime computation.
type Breakdown struct {
	GrossIncome         int `json:"gross_income"`
	StandardDeduction   int `json:"standard_deduction"`
	IncomeAfterStandard int `json:"income_after_standard"`
	TotalVIADeductions  int `json:"total_via_deductions"`
	TaxableIncome       int `json:"taxable_income"`
	TaxBeforeRebate     int `json:"tax_before_rebate"`
	Rebate87A           int `json:"rebate_87a"`
	TaxAfterRebate      int `json:"tax_after_rebate"`
	Cess                int `json:"cess"`
	TotalTaxLiability   int `json:"total_tax_liability"`
}

// Comparison reports both regimes side by side.
type Comparison struct {
	OldRegime            Breakdown `json:"old_regime"`
	NewRegime            Breakdown `json:"new_regime"`
	SavingsNewRegime     int       `json:"savings_new_regime"`
	RecommendedRegime    string    `json:"recommended_regime"`
	RecommendationReason string    `json:"recommendation_reason"`
}

// Calculator evaluates both regimes for one assessment year's
// parameters.
type Calculator struct {
	params config.TaxParams
}

// NewCalculator returns a calculator bound to the given parameters.
func NewCalculator(params config.TaxParams) *Calculator {
	return &Calculator{params: params}
}

// SlabTax applies the marginal brackets to income and returns the
// cumulative tax before rebate and cess.
func SlabTax(income int, slabs []Slab) float64 {
	tax := 0.0
	prev := 0
	for _, slab := range slabs {
		if income <= prev {
			break
		}
		upper := income
		if slab.UpperBound < upper {
			upper = slab.UpperBound
		}
		tax += float64(upper-prev) * slab.Rate
		prev = slab.UpperBound
		if income <= slab.UpperBound {
			break
		}
	}
	return tax
}

// CalculateOldRegime computes the old-regime liability. Deductions use
// the record's section keys and are capped per section before summing;
// section 80G is uncapped.
func (c *Calculator) CalculateOldRegime(grossIncome int, deductions map[string]int) Breakdown {
	p := c.params

	incomeAfterStandard := max(0, grossIncome-p.StandardDeduction)

	totalVIA := min(deductions["section_80C"], p.Section80CLimit) +
		min(deductions["section_80D"], p.Section80DLimit) +
		deductions["section_80G"]

	taxableIncome := max(0, incomeAfterStandard-totalVIA)
	taxBeforeRebate := SlabTax(taxableIncome, OldRegimeSlabs)

	rebate := 0.0
	if taxableIncome <= p.RebateLimitOld {
		rebate = math.Min(taxBeforeRebate, float64(p.RebateAmountOld))
	}

	taxAfterRebate := math.Max(0, taxBeforeRebate-rebate)
	cess := taxAfterRebate * p.CessRate

	return Breakdown{
		GrossIncome:         grossIncome,
		StandardDeduction:   p.StandardDeduction,
		IncomeAfterStandard: incomeAfterStandard,
		TotalVIADeductions:  totalVIA,
		TaxableIncome:       taxableIncome,
		TaxBeforeRebate:     int(taxBeforeRebate),
		Rebate87A:           int(rebate),
		TaxAfterRebate:      int(taxAfterRebate),
		Cess:                int(cess),
		TotalTaxLiability:   int(taxAfterRebate + cess),
	}
}

// CalculateNewRegime computes the new-regime liability. No Chapter VI-A
// deductions apply.
func (c *Calculator) CalculateNewRegime(grossIncome int) Breakdown {
	p := c.params

	incomeAfterStandard := max(0, grossIncome-p.StandardDeduction)
	taxableIncome := incomeAfterStandard
	taxBeforeRebate := SlabTax(taxableIncome, NewRegimeSlabs)

	rebate := 0.0
	if taxableIncome <= p.RebateLimitNew {
		rebate = math.Min(taxBeforeRebate, float64(p.RebateAmountNew))
	}

	taxAfterRebate := math.Max(0, taxBeforeRebate-rebate)
	cess := taxAfterRebate * p.CessRate

	return Breakdown{
		GrossIncome:         grossIncome,
		StandardDeduction:   p.StandardDeduction,
		IncomeAfterStandard: incomeAfterStandard,
		TaxableIncome:       taxableIncome,
		TaxBeforeRebate:     int(taxBeforeRebate),
		Rebate87A:           int(rebate),
		TaxAfterRebate:      int(taxAfterRebate),
		Cess:                int(cess),
		TotalTaxLiability:   int(taxAfterRebate + cess),
	}
}

// CompareRegimes runs both computations and reports the signed savings
// of switching to the new regime. An exact tie recommends the old
// regime.
func (c *Calculator) CompareRegimes(grossIncome int, deductions map[string]int) Comparison {
	oldCalc := c.CalculateOldRegime(grossIncome, deductions)
	newCalc := c.CalculateNewRegime(grossIncome)

	savings := oldCalc.TotalTaxLiability - newCalc.TotalTaxLiability

	recommended := "old"
	reason := fmt.Sprintf("Old regime saves ₹%d", -savings)
	if savings > 0 {
		recommended = "new"
		reason = fmt.Sprintf("New regime saves ₹%d", savings)
	}

	return Comparison{
		OldRegime:            oldCalc,
		NewRegime:            newCalc,
		SavingsNewRegime:     savings,
		RecommendedRegime:    recommended,
		RecommendationReason: reason,
	}
}
