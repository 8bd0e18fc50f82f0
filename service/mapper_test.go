package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenilop-regex/ai-tax-agent/config"
	"github.com/zenilop-regex/ai-tax-agent/dto"
	"github.com/zenilop-regex/ai-tax-agent/schema"
)

func testTaxParams() config.TaxParams {
	return config.TaxParams{
		AssessmentYear:    "2024-25",
		StandardDeduction: 50000,
		Section80CLimit:   150000,
		Section80DLimit:   25000,
		RebateLimitOld:    500000,
		RebateAmountOld:   12500,
		RebateLimitNew:    700000,
		RebateAmountNew:   25000,
		CessRate:          0.04,
		TDSTolerance:      100,
	}
}

func completeRecord() *dto.ExtractionRecord {
	record := dto.NewExtractionRecord()
	record.CompanyName = "ABC Tech Solutions Pvt Ltd"
	record.EmployeeName = "RAJESH KUMAR SHARMA"
	record.PANOfEmployer = "AAACB1234C"
	record.PANOfEmployee = "ABCDE1234F"
	record.TAN = "MUMA12345D"
	record.AssessmentYear = "2024-25"
	record.GrossSalaryPaid = 1200000
	record.TotalTDSDeducted = 120000
	record.QuarterlyTDS = map[string]int{"Q1": 30000, "Q2": 30000, "Q3": 30000, "Q4": 30000}
	record.Deductions = map[string]int{
		dto.Section80C: 150000,
		dto.Section80D: 25000,
		dto.Section80G: 10000,
	}
	return record
}

func newTestMapper(t *testing.T) *ITRMapper {
	t.Helper()
	validator, err := schema.NewValidator()
	require.NoError(t, err)
	return NewITRMapper(testTaxParams(), validator, zerolog.Nop())
}

func TestDeriveAssessmentYear(t *testing.T) {
	assert.Equal(t, "2025", DeriveAssessmentYear("2024-25"))
	assert.Equal(t, "2025", DeriveAssessmentYear("2024-2025"))
	assert.Equal(t, "2024", DeriveAssessmentYear("2023"))
	assert.Equal(t, "2025", DeriveAssessmentYear(""))
	assert.Equal(t, "2025", DeriveAssessmentYear("garbage"))
	assert.Equal(t, "2025", DeriveAssessmentYear("24-25"))
}

func TestMapToITRCompleteRecord(t *testing.T) {
	mapper := newTestMapper(t)

	doc, err := mapper.MapToITR(completeRecord())
	require.NoError(t, err)

	itr1 := &doc.ITR.ITR1
	assert.Equal(t, "2025", itr1.FormITR1.AssessmentYear)
	assert.Equal(t, "Rajesh Kumar Sharma", itr1.PersonalInfo.AssesseeName)
	assert.Equal(t, "ABCDE1234F", itr1.PersonalInfo.PAN)
	assert.Equal(t, "ABCDE1234F", itr1.Verification.Declaration.AssesseeVerPAN)
	assert.Equal(t, "Rajesh Kumar Sharma", itr1.Verification.Declaration.AssesseeVerName)

	income := &itr1.IncomeDeductions
	assert.Equal(t, 1200000, income.GrossSalary)
	assert.Equal(t, 50000, income.DeductionUs16)
	assert.Equal(t, 1150000, income.IncomeFromSal)
	assert.Equal(t, 1150000, income.GrossTotIncome)
	assert.Equal(t, 185000, income.DeductUndChapVIA.TotalChapVIADeductions)
	assert.Equal(t, 965000, income.TotalIncome)

	require.Len(t, itr1.TDSonSalaries.TDSonSalary, 1)
	entry := itr1.TDSonSalaries.TDSonSalary[0]
	assert.Equal(t, "MUMA12345D", entry.EmployerDetail.TAN)
	assert.Equal(t, "Abc Tech Solutions Pvt Ltd", entry.EmployerDetail.EmployerName)
	assert.Equal(t, 1200000, entry.IncChrgSal)
	assert.Equal(t, 120000, entry.TotalTDSSal)
	assert.Equal(t, 30000, entry.TDSSalQ1)
	assert.Equal(t, 120000, itr1.TDSonSalaries.TotalTDSonSalaries)

	// Old-regime computation on taxable 965,000.
	comp := &itr1.TaxComputation
	assert.Equal(t, 105500, comp.TotalTaxPayable)
	assert.Equal(t, 0, comp.Rebate87A)
	assert.Equal(t, 4220, comp.EducationCess)
	assert.Equal(t, 109720, comp.GrossTaxLiability)
	assert.Equal(t, 109720, comp.NetTaxLiability)
}

func TestMapToITRRefundSplit(t *testing.T) {
	mapper := newTestMapper(t)

	record := completeRecord()
	doc, err := mapper.MapToITR(record)
	require.NoError(t, err)

	// TDS 120,000 against a liability of 109,720 leaves a refund.
	assert.Equal(t, 10280, doc.ITR.ITR1.Refund.RefundDue)
	assert.Equal(t, 0, doc.ITR.ITR1.TaxPaid.BalTaxPayable)

	// Lower the TDS below the liability and the split flips.
	record.TotalTDSDeducted = 100000
	doc, err = mapper.MapToITR(record)
	require.NoError(t, err)

	assert.Equal(t, 0, doc.ITR.ITR1.Refund.RefundDue)
	assert.Equal(t, 9720, doc.ITR.ITR1.TaxPaid.BalTaxPayable)
}

func TestMapToITREmptyRecordKeepsPlaceholders(t *testing.T) {
	mapper := newTestMapper(t)

	doc, err := mapper.MapToITR(dto.NewExtractionRecord())
	require.NoError(t, err)

	itr1 := &doc.ITR.ITR1
	assert.Equal(t, dto.PlaceholderName, itr1.PersonalInfo.AssesseeName)
	assert.Equal(t, dto.PlaceholderPAN, itr1.PersonalInfo.PAN)
	require.Len(t, itr1.TDSonSalaries.TDSonSalary, 1)
	assert.Equal(t, dto.PlaceholderTAN, itr1.TDSonSalaries.TDSonSalary[0].EmployerDetail.TAN)
	assert.Equal(t, dto.PlaceholderEmployer, itr1.TDSonSalaries.TDSonSalary[0].EmployerDetail.EmployerName)

	assert.Equal(t, 0, itr1.IncomeDeductions.GrossSalary)
	assert.Equal(t, 0, itr1.IncomeDeductions.TotalIncome)
	assert.Equal(t, 0, itr1.TaxComputation.NetTaxLiability)
}

func TestMapToITRNilRecord(t *testing.T) {
	mapper := newTestMapper(t)

	doc, err := mapper.MapToITR(nil)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, dto.ErrMappingFailed)
}

func TestMapToITRCapsDeductions(t *testing.T) {
	mapper := newTestMapper(t)

	record := completeRecord()
	record.Deductions[dto.Section80C] = 400000
	record.Deductions[dto.Section80D] = 90000

	doc, err := mapper.MapToITR(record)
	require.NoError(t, err)

	income := &doc.ITR.ITR1.IncomeDeductions
	assert.Equal(t, 150000, income.DeductUndChapVIA.Section80C)
	assert.Equal(t, 25000, income.DeductUndChapVIA.Section80D)
	assert.Equal(t, 10000, income.DeductUndChapVIA.Section80G)
	assert.Equal(t, 185000, income.DeductUndChapVIA.TotalChapVIADeductions)
}
