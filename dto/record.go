package dto

// Provenance tags recorded in ExtractionRecord.SourceMap.
const (
	SourceRegex = "regex"
	SourceLLM   = "llm"
)

// SchemaVersion identifies the ExtractionRecord wire format.
const SchemaVersion = "2.4.1"

// Quarter keys used in ExtractionRecord.QuarterlyTDS.
var Quarters = []string{"Q1", "Q2", "Q3", "Q4"}

// Deduction section keys used in ExtractionRecord.Deductions.
const (
	Section80C = "section_80C"
	Section80D = "section_80D"
	Section80G = "section_80G"
)

// ExtractionRecord is the canonical intermediate representation of a
// Form-16. Field names are a wire contract consumed by external storage.
type ExtractionRecord struct {
	CompanyName      string            `json:"company_name"`
	EmployeeName     string            `json:"employee_name"`
	PANOfEmployer    string            `json:"pan_of_employer"`
	PANOfEmployee    string            `json:"pan_of_employee"`
	TAN              string            `json:"tan"`
	AssessmentYear   string            `json:"assessment_year"`
	GrossSalaryPaid  int               `json:"gross_salary_paid"`
	TotalTDSDeducted int               `json:"total_tds_deducted"`
	QuarterlyTDS     map[string]int    `json:"quarterly_tds"`
	Deductions       map[string]int    `json:"deductions"`
	Errors           []string          `json:"errors"`
	SourceMap        map[string]string `json:"source_map"`
	FilingReady      bool              `json:"filing_ready"`
	SchemaVersion    string            `json:"schema_version"`
	TaxpayerHash     string            `json:"taxpayer_hash"`
}

// NewExtractionRecord returns an empty record with all maps initialized.
func NewExtractionRecord() *ExtractionRecord {
	return &ExtractionRecord{
		QuarterlyTDS:  map[string]int{},
		Deductions:    map[string]int{},
		Errors:        []string{},
		SourceMap:     map[string]string{},
		SchemaVersion: SchemaVersion,
	}
}

// Field names shared between the regex extractor, the LLM fallback and
// the finalizer.
const (
	FieldCompanyName      = "company_name"
	FieldEmployeeName     = "employee_name"
	FieldPANOfEmployer    = "pan_of_employer"
	FieldPANOfEmployee    = "pan_of_employee"
	FieldTAN              = "tan"
	FieldAssessmentYear   = "assessment_year"
	FieldGrossSalaryPaid  = "gross_salary_paid"
	FieldTotalTDSDeducted = "total_tds_deducted"
	FieldQuarterlyTDS     = "quarterly_tds"
	FieldDeductions       = "deductions"
)

// CriticalFields are the fields the LLM fallback is allowed to fill and
// the finalizer checks for filing readiness.
var CriticalFields = []string{
	FieldCompanyName,
	FieldEmployeeName,
	FieldPANOfEmployee,
	FieldTAN,
	FieldGrossSalaryPaid,
	FieldTotalTDSDeducted,
}

// StringField returns the value of a named string field, or "" for
// numeric/unknown fields.
func (r *ExtractionRecord) StringField(name string) string {
	switch name {
	case FieldCompanyName:
		return r.CompanyName
	case FieldEmployeeName:
		return r.EmployeeName
	case FieldPANOfEmployer:
		return r.PANOfEmployer
	case FieldPANOfEmployee:
		return r.PANOfEmployee
	case FieldTAN:
		return r.TAN
	case FieldAssessmentYear:
		return r.AssessmentYear
	}
	return ""
}

// IsFieldSet reports whether a named field holds a non-empty,
// non-zero value.
func (r *ExtractionRecord) IsFieldSet(name string) bool {
	switch name {
	case FieldGrossSalaryPaid:
		return r.GrossSalaryPaid != 0
	case FieldTotalTDSDeducted:
		return r.TotalTDSDeducted != 0
	default:
		return r.StringField(name) != ""
	}
}

// MissingCriticalFields lists critical fields still unset.
func (r *ExtractionRecord) MissingCriticalFields() []string {
	var missing []string
	for _, f := range CriticalFields {
		if !r.IsFieldSet(f) {
			missing = append(missing, f)
		}
	}
	return missing
}
