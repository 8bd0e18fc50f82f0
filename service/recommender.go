package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/zenilop-regex/ai-tax-agent/config"
	"github.com/zenilop-regex/ai-tax-agent/dto"
	"github.com/zenilop-regex/ai-tax-agent/tax"
	"github.com/zenilop-regex/ai-tax-agent/utils"
)

// Recommender reviews a record/document pair and produces the filing
// review artifact: missing fields, field suggestions, regime advice,
// compliance issues and a completeness score.
type Recommender struct {
	calc   *tax.Calculator
	logger zerolog.Logger
}

func NewRecommender(params config.TaxParams, logger zerolog.Logger) *Recommender {
	return &Recommender{
		calc:   tax.NewCalculator(params),
		logger: logger,
	}
}

// Generate builds the full recommendation set. Every sub-analysis is
// independent; a record without a gross salary simply produces no
// regime advice.
func (r *Recommender) Generate(record *dto.ExtractionRecord, doc *dto.ITRDocument) *dto.Recommendations {
	recs := &dto.Recommendations{
		MissingFields:    []dto.MissingField{},
		Suggestions:      map[string]dto.Suggestion{},
		Advice:           []string{},
		ComplianceIssues: []dto.ComplianceIssue{},
	}

	recs.FilingReadiness = r.analyzeCompleteness(doc)
	r.suggestFields(record, recs)
	r.adviseRegime(record, recs)
	r.checkCompliance(record, recs)
	r.detectMissingFields(doc, recs)

	return recs
}

// analyzeCompleteness scores the critical leaves of the document.
// Placeholder values count as unfilled.
func (r *Recommender) analyzeCompleteness(doc *dto.ITRDocument) dto.Completeness {
	result := dto.Completeness{Issues: []string{}}
	if doc == nil {
		result.Issues = append(result.Issues, "Invalid ITR structure")
		return result
	}

	itr1 := &doc.ITR.ITR1
	leaves := []struct {
		path  string
		value any
	}{
		{"PersonalInfo.AssesseeName", itr1.PersonalInfo.AssesseeName},
		{"PersonalInfo.PAN", itr1.PersonalInfo.PAN},
		{"ITR1_IncomeDeductions.GrossSalary", itr1.IncomeDeductions.GrossSalary},
		{"ITR1_IncomeDeductions.TotalIncome", itr1.IncomeDeductions.TotalIncome},
		{"TDSonSalaries.TotalTDSonSalaries", itr1.TDSonSalaries.TotalTDSonSalaries},
		{"TaxPaid.TaxesPaid.TotalTaxesPaid", itr1.TaxPaid.TaxesPaid.TotalTaxesPaid},
		{"Verification.Declaration.AssesseeVerName", itr1.Verification.Declaration.AssesseeVerName},
	}

	for _, leaf := range leaves {
		result.TotalFields++
		if dto.IsPlaceholder(leaf.value) {
			result.Issues = append(result.Issues, "Missing or placeholder value: "+leaf.path)
			continue
		}
		result.FilledFields++
	}

	if result.TotalFields > 0 {
		result.Score = result.FilledFields * 100 / result.TotalFields
	}
	return result
}

// suggestFields proposes override-ready values recovered from the
// source record. Keys are document paths accepted by the override
// engine.
func (r *Recommender) suggestFields(record *dto.ExtractionRecord, recs *dto.Recommendations) {
	if record == nil {
		return
	}

	if record.EmployeeName != "" {
		recs.Suggestions["ITR.ITR1.PersonalInfo.AssesseeName"] = dto.Suggestion{
			SuggestedValue: utils.NormalizeName(record.EmployeeName),
			Reason:         "Normalized employee name to proper case",
			Confidence:     dto.ConfidenceHigh,
		}
	}
	if record.PANOfEmployee != "" {
		recs.Suggestions["ITR.ITR1.PersonalInfo.PAN"] = dto.Suggestion{
			SuggestedValue: utils.NormalizePAN(record.PANOfEmployee),
			Reason:         "Normalized PAN to uppercase format",
			Confidence:     dto.ConfidenceHigh,
		}
	}
	if record.TAN != "" {
		recs.Suggestions["ITR.ITR1.TDSonSalaries.TDSonSalary[0].EmployerOrDeductorOrCollectDetl.TAN"] = dto.Suggestion{
			SuggestedValue: utils.NormalizePAN(record.TAN),
			Reason:         "Fill TAN from Form-16",
			Confidence:     dto.ConfidenceHigh,
		}
	}
	if record.GrossSalaryPaid > 0 {
		recs.Suggestions["ITR.ITR1.ITR1_IncomeDeductions.GrossSalary"] = dto.Suggestion{
			SuggestedValue: record.GrossSalaryPaid,
			Reason:         "Fill gross salary from Form-16",
			Confidence:     dto.ConfidenceHigh,
		}
	}
}

func (r *Recommender) adviseRegime(record *dto.ExtractionRecord, recs *dto.Recommendations) {
	if record == nil || record.GrossSalaryPaid <= 0 {
		return
	}

	comparison := r.calc.CompareRegimes(record.GrossSalaryPaid, record.Deductions)
	oldTax := comparison.OldRegime.TotalTaxLiability
	newTax := comparison.NewRegime.TotalTaxLiability

	if newTax < oldTax {
		recs.Advice = append(recs.Advice,
			fmt.Sprintf("Consider opting for new tax regime to save ₹%d", oldTax-newTax))
	} else {
		recs.Advice = append(recs.Advice,
			fmt.Sprintf("Old tax regime is better for you, saving ₹%d", newTax-oldTax))
	}
}

func (r *Recommender) checkCompliance(record *dto.ExtractionRecord, recs *dto.Recommendations) {
	if record == nil {
		return
	}

	if record.PANOfEmployee != "" && !utils.IsValidPAN(record.PANOfEmployee) {
		recs.ComplianceIssues = append(recs.ComplianceIssues, dto.ComplianceIssue{
			Type:     "invalid_pan",
			Message:  "Invalid PAN format: " + record.PANOfEmployee,
			Severity: "high",
		})
	}
	if record.TAN != "" && !utils.IsValidTAN(record.TAN) {
		recs.ComplianceIssues = append(recs.ComplianceIssues, dto.ComplianceIssue{
			Type:     "invalid_tan",
			Message:  "Invalid TAN format: " + record.TAN,
			Severity: "high",
		})
	}
}

func (r *Recommender) detectMissingFields(doc *dto.ITRDocument, recs *dto.Recommendations) {
	if doc == nil {
		recs.MissingFields = append(recs.MissingFields, dto.MissingField{
			FieldPath: "ITR",
			Reason:    "Invalid or missing ITR structure",
		})
		return
	}

	itr1 := &doc.ITR.ITR1
	critical := []struct {
		path   string
		value  any
		reason string
	}{
		{"PersonalInfo.AssesseeName", itr1.PersonalInfo.AssesseeName, "Taxpayer name is required"},
		{"PersonalInfo.PAN", itr1.PersonalInfo.PAN, "PAN is mandatory"},
		{"ITR1_IncomeDeductions.GrossSalary", itr1.IncomeDeductions.GrossSalary, "Gross salary amount is required"},
	}

	for _, field := range critical {
		if dto.IsPlaceholder(field.value) {
			recs.MissingFields = append(recs.MissingFields, dto.MissingField{
				FieldPath: field.path,
				Reason:    field.reason,
			})
		}
	}
}
