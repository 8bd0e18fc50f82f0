package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
	"github.com/rs/zerolog"

	"github.com/zenilop-regex/ai-tax-agent/client"
	"github.com/zenilop-regex/ai-tax-agent/config"
	"github.com/zenilop-regex/ai-tax-agent/dto"
	"github.com/zenilop-regex/ai-tax-agent/utils"
)

// fieldDescriptions guide the model toward the expected value shape of
// each extractable field.
var fieldDescriptions = map[string]string{
	dto.FieldCompanyName:      "The name of the employer/company",
	dto.FieldEmployeeName:     "The name of the employee",
	dto.FieldPANOfEmployee:    "Employee PAN in format ABCDE1234F (5 letters, 4 digits, 1 letter)",
	dto.FieldPANOfEmployer:    "Employer PAN in format ABCDE1234F",
	dto.FieldTAN:              "TAN (Tax Deduction Account Number) in format ABCD12345E (4 letters, 5 digits, 1 letter)",
	dto.FieldGrossSalaryPaid:  "Total gross salary amount (number only)",
	dto.FieldTotalTDSDeducted: "Total TDS (Tax Deducted at Source) amount (number only)",
	dto.FieldAssessmentYear:   "Assessment year in format YYYY-YY (e.g., 2024-25)",
	dto.FieldQuarterlyTDS:     "Quarterly TDS breakdown with Q1, Q2, Q3, Q4",
}

var fencedJSONPatterns = []*regexp.Regexp{
	regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```"),
	regexp.MustCompile("(?s)```\\s*(\\{.*?\\})\\s*```"),
	regexp.MustCompile(`(?s)(\{[^}]*"[^"]*"[^}]*\})`),
	regexp.MustCompile(`(?s)(\{.*\})`),
}

var keyValuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"(\w+)":\s*"([^"]*)"`),
	regexp.MustCompile(`"(\w+)":\s*(\d+)`),
	regexp.MustCompile(`(\w+):\s*"([^"]*)"`),
	regexp.MustCompile(`(\w+):\s*(\d+)`),
}

var digitsOnly = regexp.MustCompile(`^\d+$`)

// LLMExtractor fills fields the pattern extractor could not resolve by
// prompting a local language model.
type LLMExtractor struct {
	llm    *client.LLMClient
	cfg    config.LLMConfig
	logger zerolog.Logger
}

func NewLLMExtractor(llm *client.LLMClient, cfg config.LLMConfig, logger zerolog.Logger) *LLMExtractor {
	return &LLMExtractor{
		llm:    llm,
		cfg:    cfg,
		logger: logger,
	}
}

// ExtractMissing prompts the first reachable endpoint for the named
// fields. It returns an empty map when no endpoint is reachable or
// every attempt fails; missing model output never fails the pipeline.
func (e *LLMExtractor) ExtractMissing(ctx context.Context, text string, missing []string) map[string]any {
	if len(missing) == 0 {
		return map[string]any{}
	}

	var endpoint *config.LLMEndpoint
	for i := range e.llm.Endpoints() {
		ep := e.llm.Endpoints()[i]
		if e.llm.Probe(ctx, ep) {
			e.logger.Info().Str("endpoint", ep.Name).Msg("found working LLM endpoint")
			endpoint = &ep
			break
		}
	}
	if endpoint == nil {
		e.logger.Warn().Msg("no LLM server available")
		return map[string]any{}
	}

	prompt := e.buildPrompt(text, missing)

	for attempt := 1; attempt <= 3; attempt++ {
		raw, err := e.llm.Complete(ctx, *endpoint, prompt)
		if err != nil {
			e.logger.Warn().Int("attempt", attempt).Err(err).Msg("LLM attempt failed")
			continue
		}
		if parsed := ParseModelJSON(raw); len(parsed) > 0 {
			e.logger.Info().Int("attempt", attempt).Msg("LLM extraction successful")
			return parsed
		}
	}

	e.logger.Error().Msg("all LLM extraction attempts failed")
	return map[string]any{}
}

func (e *LLMExtractor) buildPrompt(text string, missing []string) string {
	var fieldList strings.Builder
	for _, field := range missing {
		desc, ok := fieldDescriptions[field]
		if !ok {
			desc = field
		}
		fieldList.WriteString(fmt.Sprintf("- %s: %s\n", field, desc))
	}

	budget := e.cfg.PromptBudget
	if budget > 0 && len(text) > budget {
		text = text[:budget]
	}

	return fmt.Sprintf(`You are a data extraction expert. Extract ONLY the following fields from this Form-16 tax document.

CRITICAL RULES:
1. Return ONLY valid JSON, nothing else
2. Use exact field names provided
3. For PAN/TAN: Must match exact format (ABCDE1234F for PAN, ABCD12345E for TAN)
4. For amounts: Return only numbers, no currency symbols
5. If a field is not found, use null

FIELDS TO EXTRACT:
%s
REQUIRED OUTPUT FORMAT:
{
  "company_name": "Company Name Here or null",
  "employee_name": "Employee Name Here or null",
  "pan_of_employee": "ABCDE1234F or null",
  "gross_salary_paid": 500000,
  "total_tds_deducted": 50000
}

FORM-16 TEXT:
%s

EXTRACT THE DATA NOW (JSON only):`, fieldList.String(), text)
}

// ParseModelJSON recovers a JSON object from free-form model output.
// Strategies run strict to fuzzy: direct parse, fenced/brace block
// with cleanup, automated repair, HJSON, and finally a key-value scan.
func ParseModelJSON(text string) map[string]any {
	text = strings.TrimSpace(text)
	if text == "" {
		return map[string]any{}
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(text), &result); err == nil {
		return result
	}

	for _, pattern := range fencedJSONPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		cleaned := cleanJSONString(match[1])
		result = nil
		if err := json.Unmarshal([]byte(cleaned), &result); err == nil {
			return result
		}
		if repaired, err := jsonrepair.RepairJSON(cleaned); err == nil {
			result = nil
			if err := json.Unmarshal([]byte(repaired), &result); err == nil && len(result) > 0 {
				return result
			}
		}
		result = nil
		if err := hjson.Unmarshal([]byte(cleaned), &result); err == nil && len(result) > 0 {
			return result
		}
	}

	return extractKeyValues(text)
}

var (
	trailingCommaObj = regexp.MustCompile(`,\s*}`)
	trailingCommaArr = regexp.MustCompile(`,\s*]`)
)

func cleanJSONString(s string) string {
	s = strings.NewReplacer("“", `"`, "”", `"`, "'", `"`).Replace(s)
	s = trailingCommaObj.ReplaceAllString(s, "}")
	s = trailingCommaArr.ReplaceAllString(s, "]")

	if open, closed := strings.Count(s, "{"), strings.Count(s, "}"); open > closed {
		s += strings.Repeat("}", open-closed)
	}
	return s
}

// extractKeyValues scavenges key-value pairs from text that resisted
// every JSON parse.
func extractKeyValues(text string) map[string]any {
	result := map[string]any{}
	for _, pattern := range keyValuePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			key, value := match[1], match[2]
			if _, exists := result[key]; exists {
				continue
			}
			switch {
			case digitsOnly.MatchString(value):
				var n int
				fmt.Sscanf(value, "%d", &n)
				result[key] = n
			case strings.EqualFold(value, "null"):
				// Not found, skip.
			default:
				result[key] = value
			}
		}
	}
	return result
}

// Merge applies model output to the record, touching only the fields
// that were requested and still unset. Values that fail coercion or
// format checks are discarded. Every applied field is attributed to
// the model in the record's source map.
func (e *LLMExtractor) Merge(record *dto.ExtractionRecord, values map[string]any, requested []string) {
	wanted := make(map[string]bool, len(requested))
	for _, f := range requested {
		wanted[f] = true
	}

	for field, value := range values {
		if !wanted[field] || value == nil {
			continue
		}

		switch field {
		case dto.FieldQuarterlyTDS:
			nested, ok := value.(map[string]any)
			if !ok {
				continue
			}
			for quarter, amount := range nested {
				quarter = strings.ToUpper(strings.TrimSpace(quarter))
				if _, set := record.QuarterlyTDS[quarter]; set {
					continue
				}
				if n, ok := coerceAmount(amount); ok && n > 0 {
					record.QuarterlyTDS[quarter] = n
					record.SourceMap[dto.FieldQuarterlyTDS+"."+quarter] = dto.SourceLLM
				}
			}
		case dto.FieldDeductions:
			nested, ok := value.(map[string]any)
			if !ok {
				continue
			}
			for section, amount := range nested {
				if _, set := record.Deductions[section]; set {
					continue
				}
				if n, ok := coerceAmount(amount); ok && n > 0 {
					record.Deductions[section] = n
					record.SourceMap[dto.FieldDeductions+"."+section] = dto.SourceLLM
				}
			}
		case dto.FieldGrossSalaryPaid:
			if record.GrossSalaryPaid != 0 {
				continue
			}
			if n, ok := coerceAmount(value); ok && n > 0 {
				record.GrossSalaryPaid = n
				record.SourceMap[field] = dto.SourceLLM
			}
		case dto.FieldTotalTDSDeducted:
			if record.TotalTDSDeducted != 0 {
				continue
			}
			if n, ok := coerceAmount(value); ok && n > 0 {
				record.TotalTDSDeducted = n
				record.SourceMap[field] = dto.SourceLLM
			}
		default:
			if record.IsFieldSet(field) {
				continue
			}
			s, ok := value.(string)
			if !ok {
				continue
			}
			s = strings.TrimSpace(s)
			if s == "" || strings.EqualFold(s, "null") {
				continue
			}
			if !e.applyStringField(record, field, s) {
				continue
			}
			record.SourceMap[field] = dto.SourceLLM
		}
	}
}

// applyStringField validates format-sensitive string fields before
// storing them.
func (e *LLMExtractor) applyStringField(record *dto.ExtractionRecord, field, value string) bool {
	switch field {
	case dto.FieldCompanyName:
		record.CompanyName = value
	case dto.FieldEmployeeName:
		record.EmployeeName = utils.NormalizeName(value)
	case dto.FieldPANOfEmployee:
		pan := utils.NormalizePAN(value)
		if !utils.IsValidPAN(pan) {
			return false
		}
		record.PANOfEmployee = pan
	case dto.FieldPANOfEmployer:
		pan := utils.NormalizePAN(value)
		if !utils.IsValidPAN(pan) {
			return false
		}
		record.PANOfEmployer = pan
	case dto.FieldTAN:
		tan := utils.NormalizePAN(value)
		if !utils.IsValidTAN(tan) {
			return false
		}
		record.TAN = tan
	case dto.FieldAssessmentYear:
		record.AssessmentYear = value
	default:
		return false
	}
	return true
}

func coerceAmount(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return int(f), true
	case string:
		n := utils.NormalizeAmount(v)
		return n, n != 0
	default:
		return 0, false
	}
}
