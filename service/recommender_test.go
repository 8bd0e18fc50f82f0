package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenilop-regex/ai-tax-agent/dto"
)

func newTestRecommender() *Recommender {
	return NewRecommender(testTaxParams(), zerolog.Nop())
}

func TestGenerateSuggestions(t *testing.T) {
	rec := newTestRecommender()
	doc := baseDocument(t)

	recs := rec.Generate(completeRecord(), doc)

	name, ok := recs.Suggestions["ITR.ITR1.PersonalInfo.AssesseeName"]
	require.True(t, ok)
	assert.Equal(t, "Rajesh Kumar Sharma", name.SuggestedValue)
	assert.Equal(t, dto.ConfidenceHigh, name.Confidence)

	pan, ok := recs.Suggestions["ITR.ITR1.PersonalInfo.PAN"]
	require.True(t, ok)
	assert.Equal(t, "ABCDE1234F", pan.SuggestedValue)

	tan, ok := recs.Suggestions["ITR.ITR1.TDSonSalaries.TDSonSalary[0].EmployerOrDeductorOrCollectDetl.TAN"]
	require.True(t, ok)
	assert.Equal(t, "MUMA12345D", tan.SuggestedValue)

	gross, ok := recs.Suggestions["ITR.ITR1.ITR1_IncomeDeductions.GrossSalary"]
	require.True(t, ok)
	assert.Equal(t, 1200000, gross.SuggestedValue)
}

func TestSuggestionsApplyThroughOverrides(t *testing.T) {
	rec := newTestRecommender()
	svc := newTestOverrideService()
	doc := baseDocument(t)

	recs := rec.Generate(completeRecord(), doc)

	overrides := make(map[string]any, len(recs.Suggestions))
	for path, suggestion := range recs.Suggestions {
		overrides[path] = map[string]any{"suggested_value": suggestion.SuggestedValue}
	}

	result, skipped, err := svc.Apply(doc, overrides)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, "Rajesh Kumar Sharma", result.ITR.ITR1.PersonalInfo.AssesseeName)
	assert.Equal(t, 1200000, result.ITR.ITR1.IncomeDeductions.GrossSalary)
}

func TestGenerateRegimeAdvice(t *testing.T) {
	rec := newTestRecommender()
	doc := baseDocument(t)

	recs := rec.Generate(completeRecord(), doc)

	// Old regime 109,720 vs new regime 85,800.
	require.Len(t, recs.Advice, 1)
	assert.Contains(t, recs.Advice[0], "new tax regime")
	assert.Contains(t, recs.Advice[0], "23920")
}

func TestGenerateAdviceRequiresGrossSalary(t *testing.T) {
	rec := newTestRecommender()
	doc := baseDocument(t)

	record := completeRecord()
	record.GrossSalaryPaid = 0
	recs := rec.Generate(record, doc)

	assert.Empty(t, recs.Advice)
}

func TestGenerateComplianceIssues(t *testing.T) {
	rec := newTestRecommender()
	doc := baseDocument(t)

	record := completeRecord()
	record.PANOfEmployee = "BADPAN"
	record.TAN = "BADTAN"
	recs := rec.Generate(record, doc)

	require.Len(t, recs.ComplianceIssues, 2)
	assert.Equal(t, "invalid_pan", recs.ComplianceIssues[0].Type)
	assert.Equal(t, "invalid_tan", recs.ComplianceIssues[1].Type)
}

func TestGenerateCompletenessFullDocument(t *testing.T) {
	rec := newTestRecommender()
	doc := baseDocument(t)

	recs := rec.Generate(completeRecord(), doc)

	assert.Equal(t, 100, recs.FilingReadiness.Score)
	assert.Empty(t, recs.FilingReadiness.Issues)
	assert.Empty(t, recs.MissingFields)
}

func TestGenerateCompletenessEmptyDocument(t *testing.T) {
	rec := newTestRecommender()
	mapper := NewITRMapper(testTaxParams(), nil, zerolog.Nop())
	doc, err := mapper.MapToITR(dto.NewExtractionRecord())
	require.NoError(t, err)

	recs := rec.Generate(dto.NewExtractionRecord(), doc)

	assert.Less(t, recs.FilingReadiness.Score, 100)
	assert.NotEmpty(t, recs.FilingReadiness.Issues)

	paths := make([]string, 0, len(recs.MissingFields))
	for _, mf := range recs.MissingFields {
		paths = append(paths, mf.FieldPath)
	}
	assert.Contains(t, paths, "PersonalInfo.AssesseeName")
	assert.Contains(t, paths, "PersonalInfo.PAN")
	assert.Contains(t, paths, "ITR1_IncomeDeductions.GrossSalary")
}

func TestGenerateNilDocument(t *testing.T) {
	rec := newTestRecommender()

	recs := rec.Generate(completeRecord(), nil)

	assert.Equal(t, 0, recs.FilingReadiness.Score)
	require.NotEmpty(t, recs.MissingFields)
	assert.Equal(t, "ITR", recs.MissingFields[0].FieldPath)
}
