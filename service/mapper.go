package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zenilop-regex/ai-tax-agent/config"
	"github.com/zenilop-regex/ai-tax-agent/dto"
	"github.com/zenilop-regex/ai-tax-agent/schema"
	"github.com/zenilop-regex/ai-tax-agent/tax"
	"github.com/zenilop-regex/ai-tax-agent/utils"
)

const defaultAssessmentYear = "2025"

// ITRMapper projects a finalized extraction record onto the ITR-1
// document structure.
type ITRMapper struct {
	params    config.TaxParams
	validator *schema.Validator
	logger    zerolog.Logger
}

// NewITRMapper builds a mapper. The schema validator may be nil to
// skip wire-shape validation.
func NewITRMapper(params config.TaxParams, validator *schema.Validator, logger zerolog.Logger) *ITRMapper {
	return &ITRMapper{
		params:    params,
		validator: validator,
		logger:    logger,
	}
}

// DeriveAssessmentYear converts a Form-16 assessment year such as
// "2024-25" into the four-digit filing year the portal expects. Input
// that cannot be interpreted falls back to the current default.
func DeriveAssessmentYear(assessmentYear string) string {
	assessmentYear = strings.TrimSpace(assessmentYear)
	if assessmentYear == "" {
		return defaultAssessmentYear
	}

	if strings.Contains(assessmentYear, "-") {
		parts := strings.SplitN(assessmentYear, "-", 2)
		if year, err := strconv.Atoi(parts[0]); err == nil && len(parts[0]) == 4 {
			return strconv.Itoa(year + 1)
		}
		return defaultAssessmentYear
	}

	if year, err := strconv.Atoi(assessmentYear); err == nil && len(assessmentYear) == 4 {
		return strconv.Itoa(year + 1)
	}

	return defaultAssessmentYear
}

// MapToITR builds a complete ITR-1 document from the record. Fields
// the record does not carry keep their placeholder defaults. Mapping
// is atomic: on any failure the caller receives no partial document.
func (m *ITRMapper) MapToITR(record *dto.ExtractionRecord) (*dto.ITRDocument, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: nil record", dto.ErrMappingFailed)
	}

	ay := DeriveAssessmentYear(record.AssessmentYear)
	doc := dto.NewITRDocument(ay, m.params.StandardDeduction)
	doc.ITR.ITR1.FilingStatus.ItrFilingDueDate = ay + "-07-31"

	m.mapPersonalInfo(record, doc)
	m.mapIncomeDeductions(record, doc)
	m.mapTDS(record, doc)
	m.mapTaxesPaid(record, doc)
	m.mapVerification(record, doc)

	RecomputeTotals(doc, m.params)

	if m.validator != nil {
		if err := m.validator.ValidateDocument(doc); err != nil {
			m.logger.Error().Err(err).Msg("generated document failed schema validation")
			return nil, fmt.Errorf("%w: %v", dto.ErrMappingFailed, err)
		}
	}

	m.logger.Info().Str("assessment_year", ay).Msg("mapped record to ITR-1 document")
	return doc, nil
}

func (m *ITRMapper) mapPersonalInfo(record *dto.ExtractionRecord, doc *dto.ITRDocument) {
	itr1 := &doc.ITR.ITR1

	if record.EmployeeName != "" {
		itr1.PersonalInfo.AssesseeName = utils.NormalizeName(record.EmployeeName)
	}
	if record.PANOfEmployee != "" {
		pan := utils.NormalizePAN(record.PANOfEmployee)
		itr1.PersonalInfo.PAN = pan
		itr1.Verification.Declaration.AssesseeVerPAN = pan
	}
}

func (m *ITRMapper) mapIncomeDeductions(record *dto.ExtractionRecord, doc *dto.ITRDocument) {
	income := &doc.ITR.ITR1.IncomeDeductions

	income.GrossSalary = record.GrossSalaryPaid
	income.DeductionUs16 = m.params.StandardDeduction

	incomeFromSalary := max(0, record.GrossSalaryPaid-m.params.StandardDeduction)
	income.IncomeFromSal = incomeFromSalary
	income.NetSalary = incomeFromSalary
	income.GrossTotIncome = incomeFromSalary

	section80C := min(record.Deductions[dto.Section80C], m.params.Section80CLimit)
	section80D := min(record.Deductions[dto.Section80D], m.params.Section80DLimit)
	section80G := record.Deductions[dto.Section80G]

	income.UsrDeductUndChapVIA.Section80C = section80C
	income.UsrDeductUndChapVIA.Section80D = section80D
	income.UsrDeductUndChapVIA.Section80G = section80G
	income.DeductUndChapVIA.Section80C = section80C
	income.DeductUndChapVIA.Section80D = section80D
	income.DeductUndChapVIA.Section80G = section80G
}

func (m *ITRMapper) mapTDS(record *dto.ExtractionRecord, doc *dto.ITRDocument) {
	tds := &doc.ITR.ITR1.TDSonSalaries
	tds.TotalTDSonSalaries = record.TotalTDSDeducted

	entry := dto.TDSonSalary{
		EmployerDetail: dto.EmployerDetail{
			TAN:          dto.PlaceholderTAN,
			EmployerName: dto.PlaceholderEmployer,
		},
		IncChrgSal:  record.GrossSalaryPaid,
		TotalTDSSal: record.TotalTDSDeducted,
	}
	if record.TAN != "" {
		entry.EmployerDetail.TAN = utils.NormalizePAN(record.TAN)
	}
	if record.CompanyName != "" {
		entry.EmployerDetail.EmployerName = utils.NormalizeName(record.CompanyName)
	}

	entry.TDSSalQ1 = record.QuarterlyTDS["Q1"]
	entry.TDSSalQ2 = record.QuarterlyTDS["Q2"]
	entry.TDSSalQ3 = record.QuarterlyTDS["Q3"]
	entry.TDSSalQ4 = record.QuarterlyTDS["Q4"]

	tds.TDSonSalary = []dto.TDSonSalary{entry}
}

func (m *ITRMapper) mapTaxesPaid(record *dto.ExtractionRecord, doc *dto.ITRDocument) {
	paid := &doc.ITR.ITR1.TaxPaid
	paid.TaxesPaid.TDS = record.TotalTDSDeducted
	paid.TaxesPaid.TotalTaxesPaid = record.TotalTDSDeducted
}

func (m *ITRMapper) mapVerification(record *dto.ExtractionRecord, doc *dto.ITRDocument) {
	if record.EmployeeName != "" {
		doc.ITR.ITR1.Verification.Declaration.AssesseeVerName = utils.NormalizeName(record.EmployeeName)
	}
}

// RecomputeTotals rebuilds every derived amount in the document from
// its leaf values: the Chapter VI-A total, total income, the
// old-regime tax computation, and the refund-or-payable split. It runs
// after mapping and again after every override batch so edited leaves
// propagate.
func RecomputeTotals(doc *dto.ITRDocument, params config.TaxParams) {
	itr1 := &doc.ITR.ITR1
	income := &itr1.IncomeDeductions
	comp := &itr1.TaxComputation

	income.DeductUndChapVIA.TotalChapVIADeductions = income.DeductUndChapVIA.SectionSum()

	incomeFromSalary := max(0, income.GrossSalary-income.DeductionUs16)
	income.IncomeFromSal = incomeFromSalary
	income.NetSalary = incomeFromSalary
	income.GrossTotIncome = incomeFromSalary
	income.TotalIncome = max(0, incomeFromSalary-income.DeductUndChapVIA.TotalChapVIADeductions)

	taxLiability := int(tax.SlabTax(income.TotalIncome, tax.OldRegimeSlabs))

	rebate := 0
	if income.TotalIncome <= params.RebateLimitOld {
		rebate = min(taxLiability, params.RebateAmountOld)
	}
	taxAfterRebate := max(0, taxLiability-rebate)
	cess := int(float64(taxAfterRebate) * params.CessRate)
	grossLiability := taxAfterRebate + cess

	comp.TotalTaxPayable = taxLiability
	comp.Rebate87A = rebate
	comp.TaxPayableOnRebate = taxAfterRebate
	comp.EducationCess = cess
	comp.GrossTaxLiability = grossLiability
	comp.NetTaxLiability = grossLiability
	comp.TotTaxPlusIntrstPay = grossLiability

	balance := itr1.TaxPaid.TaxesPaid.TotalTaxesPaid - grossLiability
	if balance >= 0 {
		itr1.Refund.RefundDue = balance
		itr1.TaxPaid.BalTaxPayable = 0
	} else {
		itr1.Refund.RefundDue = 0
		itr1.TaxPaid.BalTaxPayable = -balance
	}
}
