package dto

// Suggestion confidence levels.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// MissingField flags a critical document path still holding a
// placeholder.
type MissingField struct {
	FieldPath string `json:"field_path"`
	Reason    string `json:"reason"`
}

// Suggestion proposes a value for a document path. Accepted suggestions
// are applied through the override engine.
type Suggestion struct {
	SuggestedValue any    `json:"suggested_value"`
	Reason         string `json:"reason"`
	Confidence     string `json:"confidence"`
}

// ComplianceIssue reports a format violation in the source record.
type ComplianceIssue struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// Completeness scores how much of the document is genuinely filled
// (placeholders do not count).
type Completeness struct {
	Score        int      `json:"score"`
	FilledFields int      `json:"filled_fields"`
	TotalFields  int      `json:"total_fields"`
	Issues       []string `json:"issues"`
}

// Recommendations is the read-only review artifact handed to the
// editing layer after each processing run.
type Recommendations struct {
	MissingFields    []MissingField        `json:"missing_fields"`
	Suggestions      map[string]Suggestion `json:"suggestions"`
	Advice           []string              `json:"advice"`
	ComplianceIssues []ComplianceIssue     `json:"compliance_issues"`
	FilingReadiness  Completeness          `json:"filing_readiness"`
}
