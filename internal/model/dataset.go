package model

// Row is one raw spreadsheet row keyed by source header. Values are whatever the
// reader materialized: string, a Go numeric type, bool, time.Time or nil.
type Row map[string]any

// Dataset is a parsed upload before normalization.
type Dataset struct {
	Headers []string
	Rows    []Row
}

// Result is the output of normalizing one dataset into canonical rows.
type Result[R any] struct {
	Rows            []R            `json:"rows"`
	FieldMappings   []FieldMapping `json:"fieldMappings"`
	UnmappedHeaders []string       `json:"unmappedHeaders"`
	Issues          []Issue        `json:"issues"`
}

// HasErrors reports whether any issue has error severity.
func (r *Result[R]) HasErrors() bool {
	for _, is := range r.Issues {
		if is.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CountBySeverity returns the number of warning and error issues.
func (r *Result[R]) CountBySeverity() (warnings, errors int) {
	for _, is := range r.Issues {
		switch is.Severity {
		case SeverityWarning:
			warnings++
		case SeverityError:
			errors++
		}
	}
	return warnings, errors
}
