package service

import (
	"fmt"

	"github.com/zenilop-regex/ai-tax-agent/config"
	"github.com/zenilop-regex/ai-tax-agent/dto"
	"github.com/zenilop-regex/ai-tax-agent/utils"
)

// Validator performs advisory consistency checks on an extraction
// record. Issues are recorded on the record itself and never block
// downstream processing.
type Validator struct {
	tax config.TaxParams
}

func NewValidator(tax config.TaxParams) *Validator {
	return &Validator{tax: tax}
}

// Validate appends one message per detected issue to record.Errors and
// returns the messages found in this pass.
func (v *Validator) Validate(record *dto.ExtractionRecord) []string {
	var issues []string

	if record.PANOfEmployee != "" && !utils.IsValidPAN(record.PANOfEmployee) {
		issues = append(issues, fmt.Sprintf("employee PAN %q does not match the expected format", record.PANOfEmployee))
	}
	if record.PANOfEmployer != "" && !utils.IsValidPAN(record.PANOfEmployer) {
		issues = append(issues, fmt.Sprintf("employer PAN %q does not match the expected format", record.PANOfEmployer))
	}
	if record.TAN != "" && !utils.IsValidTAN(record.TAN) {
		issues = append(issues, fmt.Sprintf("TAN %q does not match the expected format", record.TAN))
	}

	if record.TotalTDSDeducted > 0 && len(record.QuarterlyTDS) > 0 {
		var sum int
		for _, amount := range record.QuarterlyTDS {
			sum += amount
		}
		diff := record.TotalTDSDeducted - sum
		if diff < 0 {
			diff = -diff
		}
		if diff > v.tax.TDSTolerance {
			issues = append(issues, fmt.Sprintf(
				"quarterly TDS sum %d differs from total TDS %d by more than %d",
				sum, record.TotalTDSDeducted, v.tax.TDSTolerance))
		}
	}

	record.Errors = append(record.Errors, issues...)
	return issues
}
