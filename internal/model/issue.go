package model

// IssueType classifies a normalization anomaly.
type IssueType string

const (
	IssueMissingRequiredField   IssueType = "missing_required_field"
	IssueDuplicateHeader        IssueType = "duplicate_header"
	IssueInvalidNumber          IssueType = "invalid_number"
	IssueInvalidDate            IssueType = "invalid_date"
	IssueInvalidBoolean         IssueType = "invalid_boolean"
	IssueInvalidString          IssueType = "invalid_string"
	IssueSchemaValidationFailed IssueType = "schema_validation_failed"
)

// Severity is either warning or error. Error issues block an upload.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Issue is one per-cell or per-row anomaly found while normalizing a dataset.
// RowIndex is 0-based and nil for dataset-level issues.
type Issue struct {
	Type     IssueType `json:"type"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Column   string    `json:"column,omitempty"`
	RowIndex *int      `json:"rowIndex,omitempty"`
	RawValue any       `json:"rawValue,omitempty"`
}

// FieldMapping records which source header was selected for a canonical field.
// Header and Alias are nil when nothing matched. Conflicts lists later headers
// that matched the same field and were ignored.
type FieldMapping struct {
	Field     string   `json:"field"`
	Header    *string  `json:"header,omitempty"`
	Alias     *string  `json:"alias,omitempty"`
	Conflicts []string `json:"conflicts,omitempty"`
}
