package normalize

import (
	"fmt"

	"github.com/becastil/costdash/internal/model"
)

// Option adjusts a single normalization call.
type Option func(*options)

type options struct {
	extraAliases map[string][]string
}

// WithExtraAliases adds header aliases per canonical field on top of the
// built-in tables. Aliases already owned by another field are ignored with a
// duplicate_header warning.
func WithExtraAliases(aliases map[string][]string) Option {
	return func(o *options) {
		o.extraAliases = aliases
	}
}

// NormalizeBudget converts a raw budget dataset into canonical budget rows.
func NormalizeBudget(ds model.Dataset, opts ...Option) model.Result[model.BudgetRow] {
	return run(BudgetTable, ds, ValidateBudgetRow, opts)
}

// NormalizeClaims converts a raw claims dataset into canonical claims rows.
func NormalizeClaims(ds model.Dataset, opts ...Option) model.Result[model.ClaimsRow] {
	return run(ClaimsTable, ds, ValidateClaimsRow, opts)
}

// boundField is a table field paired with the header it resolved to.
type boundField[R any] struct {
	Field[R]
	header string
}

func run[R any](t *Table[R], ds model.Dataset, validate func(*R) []SchemaIssue, opts []Option) model.Result[R] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	specs, aliasIssues := mergeAliases(t.Specs(), o.extraAliases)
	res := ResolveHeaders(ds.Headers, specs)

	out := model.Result[R]{
		Rows:            make([]R, 0, len(ds.Rows)),
		FieldMappings:   res.Mappings,
		UnmappedHeaders: append([]string{}, res.Unmapped...),
		Issues:          append(append([]model.Issue{}, aliasIssues...), res.Issues...),
	}

	var primaries, rest []boundField[R]
	for _, f := range t.Fields {
		b := boundField[R]{Field: f}
		if m, ok := res.Lookup[f.Name]; ok {
			b.header = m.Header
		}
		if f.Primary {
			primaries = append(primaries, b)
		} else if b.header != "" {
			rest = append(rest, b)
		}
	}

	for i, raw := range ds.Rows {
		var row R
		resolved := true
		for _, f := range primaries {
			if f.header == "" {
				resolved = false
				continue
			}
			c := f.assign(&row, raw[f.header])
			switch {
			case c.err != nil:
				out.Issues = append(out.Issues, coercionIssue(f.Field, f.header, i, raw[f.header], c.err, model.SeverityError))
				resolved = false
			case !c.resolved:
				out.Issues = append(out.Issues, model.Issue{
					Type:     model.IssueMissingRequiredField,
					Severity: model.SeverityError,
					Message:  fmt.Sprintf("row %d has no value for required field %q", i, f.Name),
					Column:   f.header,
					RowIndex: rowIndex(i),
				})
				resolved = false
			}
		}
		if !resolved {
			continue
		}
		if t.Derive != nil {
			t.Derive(&row)
		}

		for _, f := range rest {
			c := f.assign(&row, raw[f.header])
			if c.err == nil {
				continue
			}
			sev := model.SeverityWarning
			if f.Required {
				sev = model.SeverityError
			}
			out.Issues = append(out.Issues, coercionIssue(f.Field, f.header, i, raw[f.header], c.err, sev))
		}

		if failures := validate(&row); len(failures) > 0 {
			for _, s := range failures {
				out.Issues = append(out.Issues, model.Issue{
					Type:     model.IssueSchemaValidationFailed,
					Severity: model.SeverityError,
					Message:  s.Message,
					Column:   s.Path,
					RowIndex: rowIndex(i),
				})
			}
			continue
		}
		out.Rows = append(out.Rows, row)
	}

	return out
}

func coercionIssue[R any](f Field[R], header string, i int, raw any, err error, sev model.Severity) model.Issue {
	return model.Issue{
		Type:     f.Kind.IssueType(),
		Severity: sev,
		Message:  fmt.Sprintf("row %d field %q: %v", i, f.Name, err),
		Column:   header,
		RowIndex: rowIndex(i),
		RawValue: raw,
	}
}

func rowIndex(i int) *int {
	return &i
}
