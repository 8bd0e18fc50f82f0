package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenilop-regex/ai-tax-agent/dto"
)

type stubPDFProcessor struct {
	text string
	err  error
}

func (s *stubPDFProcessor) ExtractText(pdfData []byte) (string, error) {
	return s.text, s.err
}

const extractorSampleText = `Form 16 - Part A

Name of Employer: ABC Tech Solutions Pvt Ltd
PAN of Employer: AAACB1234C
TAN of Employer: MUMA12345D

Name of Employee: rajesh kumar sharma
PAN of Employee: abcde1234f

Assessment Year: 2024-25

Gross Salary Paid: ₹ 12,00,000
Total TDS Deducted: ₹ 1,20,000

Q1: 30,000
Q2: 30,000
Q3: 30,000
Q4: 30,000

Section 80C: 1,50,000
Section 80D: 25,000
`

func newTestForm16Service(pdf PDFProcessor) *Form16Service {
	return NewForm16Service(pdf, NewValidator(testTaxParams()), nil, zerolog.Nop())
}

func TestExtractFullPipeline(t *testing.T) {
	svc := newTestForm16Service(&stubPDFProcessor{text: extractorSampleText})

	record, err := svc.Extract(context.Background(), []byte("%PDF-"))
	require.NoError(t, err)

	assert.Equal(t, "ABC Tech Solutions Pvt Ltd", record.CompanyName)
	assert.Equal(t, "Rajesh Kumar Sharma", record.EmployeeName)
	assert.Equal(t, "AAACB1234C", record.PANOfEmployer)
	assert.Equal(t, "ABCDE1234F", record.PANOfEmployee)
	assert.Equal(t, "MUMA12345D", record.TAN)
	assert.Equal(t, "2024-25", record.AssessmentYear)
	assert.Equal(t, 1200000, record.GrossSalaryPaid)
	assert.Equal(t, 120000, record.TotalTDSDeducted)
	assert.Equal(t, map[string]int{"Q1": 30000, "Q2": 30000, "Q3": 30000, "Q4": 30000}, record.QuarterlyTDS)
	assert.Equal(t, map[string]int{"section_80C": 150000, "section_80D": 25000}, record.Deductions)

	assert.Equal(t, dto.SourceRegex, record.SourceMap["company_name"])
	assert.Equal(t, dto.SourceRegex, record.SourceMap["quarterly_tds.Q1"])
	assert.Equal(t, dto.SourceRegex, record.SourceMap["deductions.section_80C"])

	assert.True(t, record.FilingReady)
	assert.Empty(t, record.Errors)
	assert.Equal(t, dto.SchemaVersion, record.SchemaVersion)
	// sha256 of "ABCDE1234F_Rajesh Kumar Sharma"
	assert.Len(t, record.TaxpayerHash, 64)
}

func TestExtractHashIsStable(t *testing.T) {
	svc := newTestForm16Service(&stubPDFProcessor{text: extractorSampleText})

	first, err := svc.Extract(context.Background(), nil)
	require.NoError(t, err)
	second, err := svc.Extract(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, first.TaxpayerHash, second.TaxpayerHash)
}

func TestExtractNoText(t *testing.T) {
	svc := newTestForm16Service(&stubPDFProcessor{err: errors.New("garbled stream")})

	record, err := svc.Extract(context.Background(), []byte("junk"))
	assert.Nil(t, record)
	assert.ErrorIs(t, err, dto.ErrNoTextExtracted)
}

func TestExtractPartialDocumentNotFilingReady(t *testing.T) {
	svc := newTestForm16Service(&stubPDFProcessor{text: "Name of Employee: RAJESH KUMAR SHARMA\n"})

	record, err := svc.Extract(context.Background(), nil)
	require.NoError(t, err)

	assert.False(t, record.FilingReady)
	assert.Equal(t, "", record.TaxpayerHash)
	assert.Contains(t, record.MissingCriticalFields(), dto.FieldCompanyName)
	assert.Contains(t, record.MissingCriticalFields(), dto.FieldPANOfEmployee)
}

func TestExtractRecordsValidationIssues(t *testing.T) {
	text := `Name of Employer: ABC Tech
TAN of Employer: MUMA12345D
Total TDS Deducted: 120000
Q1: 30,000
Q2: 30,000
`
	svc := newTestForm16Service(&stubPDFProcessor{text: text})

	record, err := svc.Extract(context.Background(), nil)
	require.NoError(t, err)

	// Quarterly sum 60,000 differs from the stated total by more than
	// the tolerance.
	require.Len(t, record.Errors, 1)
	assert.Contains(t, record.Errors[0], "quarterly TDS sum")
	assert.False(t, record.FilingReady)
}

func TestExtractNotFilingReadyWhileIssuesRecorded(t *testing.T) {
	text := `Name of Employer: ABC Tech Solutions Pvt Ltd
TAN of Employer: MUMA12345D

Name of Employee: rajesh kumar sharma
PAN of Employee: ABCDE1234F

Gross Salary Paid: 12,00,000
Total TDS Deducted: 1,20,000

Q1: 30,000
Q2: 30,000
`
	svc := newTestForm16Service(&stubPDFProcessor{text: text})

	record, err := svc.Extract(context.Background(), nil)
	require.NoError(t, err)

	// Every critical field is present, but the quarterly breakdown
	// contradicts the stated total. The record must not be offered
	// for filing until the inconsistency is resolved.
	assert.Empty(t, record.MissingCriticalFields())
	require.NotEmpty(t, record.Errors)
	assert.False(t, record.FilingReady)
}

func TestExtractZeroTDSIsFilingReady(t *testing.T) {
	text := `Name of Employer: ABC Tech Solutions Pvt Ltd
TAN of Employer: MUMA12345D

Name of Employee: rajesh kumar sharma
PAN of Employee: ABCDE1234F

Gross Salary Paid: 4,00,000
`
	svc := newTestForm16Service(&stubPDFProcessor{text: text})

	record, err := svc.Extract(context.Background(), nil)
	require.NoError(t, err)

	// Income below the taxable threshold legitimately carries no
	// withholding.
	assert.Equal(t, 0, record.TotalTDSDeducted)
	assert.Empty(t, record.Errors)
	assert.True(t, record.FilingReady)
}
