package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/zenilop-regex/ai-tax-agent/dto"
	"github.com/zenilop-regex/ai-tax-agent/utils"
)

// Form16Service runs the full extraction pipeline: text acquisition,
// pattern extraction, advisory validation, LLM fallback for missing
// critical fields, and finalization.
type Form16Service struct {
	pdf       PDFProcessor
	validator *Validator
	llm       *LLMExtractor
	logger    zerolog.Logger
}

// NewForm16Service wires the pipeline stages. The LLM extractor may be
// nil, in which case records with missing critical fields stay
// incomplete.
func NewForm16Service(pdf PDFProcessor, validator *Validator, llm *LLMExtractor, logger zerolog.Logger) *Form16Service {
	return &Form16Service{
		pdf:       pdf,
		validator: validator,
		llm:       llm,
		logger:    logger,
	}
}

// Extract processes raw Form-16 PDF bytes into a finalized record.
func (s *Form16Service) Extract(ctx context.Context, pdfData []byte) (*dto.ExtractionRecord, error) {
	text, err := s.pdf.ExtractText(pdfData)
	if err != nil {
		s.logger.Error().Err(err).Msg("text acquisition failed")
		return nil, fmt.Errorf("%w: %v", dto.ErrNoTextExtracted, err)
	}

	record := dto.NewExtractionRecord()
	s.extractWithPatterns(text, record)

	issues := s.validator.Validate(record)
	if len(issues) > 0 {
		s.logger.Warn().Strs("issues", issues).Msg("validation found inconsistencies")
	}

	missing := record.MissingCriticalFields()
	if len(missing) > 0 && s.llm != nil {
		s.logger.Info().Strs("missing", missing).Msg("attempting LLM fallback for missing fields")
		values := s.llm.ExtractMissing(ctx, text, missing)
		s.llm.Merge(record, values, missing)
	}

	s.finalize(record)
	return record, nil
}

// extractWithPatterns fills the record from the ordered regex tables,
// tagging every resolved field with regex provenance.
func (s *Form16Service) extractWithPatterns(text string, record *dto.ExtractionRecord) {
	if v := utils.ExtractField(text, dto.FieldCompanyName); v != "" {
		record.CompanyName = v
		record.SourceMap[dto.FieldCompanyName] = dto.SourceRegex
	}
	if v := utils.ExtractField(text, dto.FieldEmployeeName); v != "" {
		record.EmployeeName = utils.NormalizeName(v)
		record.SourceMap[dto.FieldEmployeeName] = dto.SourceRegex
	}
	if v := utils.ExtractField(text, dto.FieldPANOfEmployer); v != "" {
		record.PANOfEmployer = utils.NormalizePAN(v)
		record.SourceMap[dto.FieldPANOfEmployer] = dto.SourceRegex
	}
	if v := utils.ExtractField(text, dto.FieldPANOfEmployee); v != "" {
		record.PANOfEmployee = utils.NormalizePAN(v)
		record.SourceMap[dto.FieldPANOfEmployee] = dto.SourceRegex
	}
	if v := utils.ExtractField(text, dto.FieldTAN); v != "" {
		record.TAN = utils.NormalizePAN(v)
		record.SourceMap[dto.FieldTAN] = dto.SourceRegex
	}
	if v := utils.ExtractField(text, dto.FieldAssessmentYear); v != "" {
		record.AssessmentYear = v
		record.SourceMap[dto.FieldAssessmentYear] = dto.SourceRegex
	}
	if v := utils.ExtractField(text, dto.FieldGrossSalaryPaid); v != "" {
		if amount := utils.NormalizeAmount(v); amount > 0 {
			record.GrossSalaryPaid = amount
			record.SourceMap[dto.FieldGrossSalaryPaid] = dto.SourceRegex
		}
	}
	if v := utils.ExtractField(text, dto.FieldTotalTDSDeducted); v != "" {
		if amount := utils.NormalizeAmount(v); amount > 0 {
			record.TotalTDSDeducted = amount
			record.SourceMap[dto.FieldTotalTDSDeducted] = dto.SourceRegex
		}
	}

	for quarter, amount := range utils.ExtractQuarterlyTDS(text) {
		record.QuarterlyTDS[quarter] = amount
		record.SourceMap[dto.FieldQuarterlyTDS+"."+quarter] = dto.SourceRegex
	}
	for section, amount := range utils.ExtractDeductions(text) {
		record.Deductions[section] = amount
		record.SourceMap[dto.FieldDeductions+"."+section] = dto.SourceRegex
	}
}

// finalize computes the taxpayer identity hash and the filing-ready
// flag. The hash requires both the employee PAN and name. A record is
// filing-ready only when the identity fields are present, the gross
// salary is positive, the TDS total is not negative, and validation
// recorded no issues. Zero TDS is a legitimate filing.
func (s *Form16Service) finalize(record *dto.ExtractionRecord) {
	if record.PANOfEmployee != "" && record.EmployeeName != "" {
		sum := sha256.Sum256([]byte(record.PANOfEmployee + "_" + record.EmployeeName))
		record.TaxpayerHash = hex.EncodeToString(sum[:])
	}
	record.FilingReady = record.CompanyName != "" &&
		record.EmployeeName != "" &&
		record.PANOfEmployee != "" &&
		record.TAN != "" &&
		record.GrossSalaryPaid > 0 &&
		record.TotalTDSDeducted >= 0 &&
		len(record.Errors) == 0
}
