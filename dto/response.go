package dto

import "errors"

// Custom errors
var (
	ErrNoTextExtracted = errors.New("could not extract text from PDF")
	ErrMappingFailed   = errors.New("failed to build ITR document")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ExtractResponse is returned by the Form-16 extraction endpoint.
type ExtractResponse struct {
	Record      *ExtractionRecord `json:"record"`
	ProcessedAt string            `json:"processed_at"`
}

// GenerateITRRequest asks the mapper to build a document from a record.
type GenerateITRRequest struct {
	Record *ExtractionRecord `json:"record" binding:"required"`
}

// GenerateITRResponse carries the mapped document.
type GenerateITRResponse struct {
	Document *ITRDocument `json:"document"`
}

// OverrideRequest applies a batch of dotted-path corrections to a
// document. Values may be raw leaves or suggestion objects carrying a
// "suggested_value" key.
type OverrideRequest struct {
	Document  *ITRDocument   `json:"document" binding:"required"`
	Overrides map[string]any `json:"overrides" binding:"required"`
}

// OverrideResponse carries the patched document plus warnings for any
// skipped paths.
type OverrideResponse struct {
	Document *ITRDocument `json:"document"`
	Skipped  []string     `json:"skipped,omitempty"`
}

// RecommendationRequest pairs a record with its mapped document.
type RecommendationRequest struct {
	Record   *ExtractionRecord `json:"record" binding:"required"`
	Document *ITRDocument      `json:"document" binding:"required"`
}

// TaxCompareRequest asks for an old vs new regime comparison.
type TaxCompareRequest struct {
	GrossIncome int            `json:"gross_income" binding:"required"`
	Deductions  map[string]int `json:"deductions"`
}
