package utils

import (
	"regexp"
	"strings"
)

// Ordered pattern lists per field: specific label variants first, generic
// headings last, so vendor-specific payroll layouts win over loose
// matches. First non-empty match is used.
var fieldPatterns = map[string][]*regexp.Regexp{
	"company_name": {
		regexp.MustCompile(`(?i)Employer\s+Name\s*[:\-]?\s*(.*?)\s+(?:Employer\s+PAN|PAN)`),
		regexp.MustCompile(`(?i)Name\s+of\s+Employer\s*[:\-]?\s*(.*?)(?:\n|$)`),
		regexp.MustCompile(`(?i)Deductor\s+Name\s*[:\-]?\s*(.*?)(?:\n|$)`),
	},
	"employee_name": {
		regexp.MustCompile(`(?i)Employee\s+Name\s*[:\-]?\s*(.*?)\s+(?:Employee\s+PAN|PAN)`),
		regexp.MustCompile(`(?i)Name\s+of\s+Employee\s*[:\-]?\s*(.*?)(?:\n|$)`),
		regexp.MustCompile(`(?i)Deductee\s+Name\s*[:\-]?\s*(.*?)(?:\n|$)`),
	},
	"pan_of_employer": {
		regexp.MustCompile(`(?i)Employer\s+PAN\s*[:\-]?\s*([A-Z]{5}[0-9]{4}[A-Z])`),
		regexp.MustCompile(`(?i)PAN\s+of\s+Employer\s*[:\-]?\s*([A-Z]{5}[0-9]{4}[A-Z])`),
		regexp.MustCompile(`(?i)Deductor\s+PAN\s*[:\-]?\s*([A-Z]{5}[0-9]{4}[A-Z])`),
	},
	"pan_of_employee": {
		regexp.MustCompile(`(?i)Employee\s+PAN\s*[:\-]?\s*([A-Z]{5}[0-9]{4}[A-Z])`),
		regexp.MustCompile(`(?i)PAN\s+of\s+Employee\s*[:\-]?\s*([A-Z]{5}[0-9]{4}[A-Z])`),
		regexp.MustCompile(`(?i)Deductee\s+PAN\s*[:\-]?\s*([A-Z]{5}[0-9]{4}[A-Z])`),
	},
	"tan": {
		regexp.MustCompile(`(?i)TAN\s*(?:of\s*Employer)?\s*[:\-]?\s*([A-Z]{4}[0-9]{5}[A-Z])`),
		regexp.MustCompile(`(?i)Tax\s+Deduction\s+(?:and\s+)?Collection\s+Account\s+Number\s*[:\-]?\s*([A-Z]{4}[0-9]{5}[A-Z])`),
	},
	"assessment_year": {
		regexp.MustCompile(`(?i)Assessment\s+Year\s*[:\-]?\s*(\d{4}-\d{2})`),
		regexp.MustCompile(`(?i)A\.?Y\.?\s*[:\-]?\s*(\d{4}-\d{2})`),
		regexp.MustCompile(`(?i)Financial\s+Year\s*[:\-]?\s*(\d{4}-\d{2})`),
	},
	"gross_salary_paid": {
		regexp.MustCompile(`(?i)Gross\s+Salary\s+Paid\s*[:\-]?\s*₹?\s*([\d,]+)`),
		regexp.MustCompile(`(?i)Total\s+Income\s*[:\-]?\s*₹?\s*([\d,]+)`),
		regexp.MustCompile(`(?i)Gross\s+Total\s+Income\s*[:\-]?\s*₹?\s*([\d,]+)`),
	},
	"total_tds_deducted": {
		regexp.MustCompile(`(?i)Total\s+TDS\s+Deducted\s*[:\-]?\s*₹?\s*([\d,]+)`),
		regexp.MustCompile(`(?i)Total\s+Tax\s+Deducted\s*[:\-]?\s*₹?\s*([\d,]+)`),
		regexp.MustCompile(`(?i)Tax\s+Deducted\s+at\s+Source\s*[:\-]?\s*₹?\s*([\d,]+)`),
	},
}

var quarterlyPatterns = map[string][]*regexp.Regexp{
	"Q1": {
		regexp.MustCompile(`(?i)(?:1st\s+Quarter|Q1|First\s+Quarter)[^₹\d]*₹?\s*([\d,]+)`),
		regexp.MustCompile(`(?i)April\s+to\s+June[^₹\d]*₹?\s*([\d,]+)`),
	},
	"Q2": {
		regexp.MustCompile(`(?i)(?:2nd\s+Quarter|Q2|Second\s+Quarter)[^₹\d]*₹?\s*([\d,]+)`),
		regexp.MustCompile(`(?i)July\s+to\s+September[^₹\d]*₹?\s*([\d,]+)`),
	},
	"Q3": {
		regexp.MustCompile(`(?i)(?:3rd\s+Quarter|Q3|Third\s+Quarter)[^₹\d]*₹?\s*([\d,]+)`),
		regexp.MustCompile(`(?i)October\s+to\s+December[^₹\d]*₹?\s*([\d,]+)`),
	},
	"Q4": {
		regexp.MustCompile(`(?i)(?:4th\s+Quarter|Q4|Fourth\s+Quarter|Final\s+Quarter)[^₹\d]*₹?\s*([\d,]+)`),
		regexp.MustCompile(`(?i)January\s+to\s+March[^₹\d]*₹?\s*([\d,]+)`),
	},
}

var deductionPatterns = map[string][]*regexp.Regexp{
	"section_80C": {
		regexp.MustCompile(`(?i)80C[^₹\d]*₹?\s*([\d,]+)`),
		regexp.MustCompile(`(?i)Section\s+80C[^₹\d]*₹?\s*([\d,]+)`),
	},
	"section_80D": {
		regexp.MustCompile(`(?i)80D[^₹\d]*₹?\s*([\d,]+)`),
		regexp.MustCompile(`(?i)Section\s+80D[^₹\d]*₹?\s*([\d,]+)`),
	},
	"section_80G": {
		regexp.MustCompile(`(?i)80G[^₹\d]*₹?\s*([\d,]+)`),
		regexp.MustCompile(`(?i)Section\s+80G[^₹\d]*₹?\s*([\d,]+)`),
	},
}

// placeholder strings a label match may capture instead of a real value
var emptyMatches = map[string]bool{"": true, "-": true, "N/A": true, "None": true}

// ExtractField returns the first usable match for a named field, or "".
func ExtractField(text, fieldName string) string {
	for _, re := range fieldPatterns[fieldName] {
		m := re.FindStringSubmatch(text)
		if len(m) > 1 {
			value := strings.TrimSpace(m[1])
			if !emptyMatches[value] {
				return value
			}
		}
	}
	return ""
}

// ExtractQuarterlyTDS returns per-quarter TDS amounts. Quarters whose
// matched value normalizes to zero are omitted.
func ExtractQuarterlyTDS(text string) map[string]int {
	quarterly := map[string]int{}
	for quarter, patterns := range quarterlyPatterns {
		for _, re := range patterns {
			m := re.FindStringSubmatch(text)
			if len(m) > 1 {
				if amount := NormalizeAmount(m[1]); amount > 0 {
					quarterly[quarter] = amount
					break
				}
			}
		}
	}
	return quarterly
}

// ExtractDeductions returns per-section deduction amounts, skipping
// zero-valued matches.
func ExtractDeductions(text string) map[string]int {
	deductions := map[string]int{}
	for section, patterns := range deductionPatterns {
		for _, re := range patterns {
			m := re.FindStringSubmatch(text)
			if len(m) > 1 {
				if amount := NormalizeAmount(m[1]); amount > 0 {
					deductions[section] = amount
					break
				}
			}
		}
	}
	return deductions
}
