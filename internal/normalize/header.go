package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/becastil/costdash/internal/model"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)

// NormalizeHeader lowercases s and strips every non-alphanumeric character, so
// "Stop-Loss Reimb." and "stop_loss_reimb" compare equal.
func NormalizeHeader(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "")
}

// FieldSpec is the header-resolution view of a canonical field. The canonical
// name is always an implicit alias.
type FieldSpec struct {
	Name     string
	Required bool
	Aliases  []string
}

// HeaderMatch is the source header selected for a canonical field and the alias
// that matched it.
type HeaderMatch struct {
	Header string
	Alias  string
}

// Resolution is the outcome of matching a dataset's headers against a field table.
type Resolution struct {
	Lookup   map[string]HeaderMatch
	Mappings []model.FieldMapping
	Unmapped []string
	Issues   []model.Issue
}

type aliasEntry struct {
	field string
	alias string
}

// buildAliasIndex maps every normalized alias to its owning field. An alias
// owned by two different fields is an error in the table itself.
func buildAliasIndex(fields []FieldSpec) (map[string]aliasEntry, error) {
	index := make(map[string]aliasEntry)
	for _, f := range fields {
		for _, a := range append([]string{f.Name}, f.Aliases...) {
			key := NormalizeHeader(a)
			if key == "" {
				return nil, fmt.Errorf("field %q: alias %q normalizes to nothing", f.Name, a)
			}
			if prev, ok := index[key]; ok {
				if prev.field != f.Name {
					return nil, fmt.Errorf("alias %q claimed by both %q and %q", a, prev.field, f.Name)
				}
				continue
			}
			index[key] = aliasEntry{field: f.Name, alias: a}
		}
	}
	return index, nil
}

// ResolveHeaders matches headers to canonical fields. Headers are scanned in
// file order and the first header to match a field wins it; later matches are
// reported as duplicate_header warnings and left out of Lookup. Required fields
// without a header produce a missing_required_field error.
func ResolveHeaders(headers []string, fields []FieldSpec) Resolution {
	index, err := buildAliasIndex(fields)
	if err != nil {
		panic("normalize: " + err.Error())
	}

	res := Resolution{Lookup: make(map[string]HeaderMatch)}
	conflicts := make(map[string][]string)

	for _, h := range headers {
		entry, ok := index[NormalizeHeader(h)]
		if !ok {
			res.Unmapped = append(res.Unmapped, h)
			continue
		}
		if first, taken := res.Lookup[entry.field]; taken {
			conflicts[entry.field] = append(conflicts[entry.field], h)
			res.Issues = append(res.Issues, model.Issue{
				Type:     model.IssueDuplicateHeader,
				Severity: model.SeverityWarning,
				Message:  fmt.Sprintf("column %q also matches field %q; using %q", h, entry.field, first.Header),
				Column:   h,
			})
			continue
		}
		res.Lookup[entry.field] = HeaderMatch{Header: h, Alias: entry.alias}
	}

	for _, f := range fields {
		m := model.FieldMapping{Field: f.Name, Conflicts: conflicts[f.Name]}
		if match, ok := res.Lookup[f.Name]; ok {
			header, alias := match.Header, match.Alias
			m.Header = &header
			m.Alias = &alias
		} else if f.Required {
			res.Issues = append(res.Issues, model.Issue{
				Type:     model.IssueMissingRequiredField,
				Severity: model.SeverityError,
				Message:  fmt.Sprintf("required field %q has no matching column", f.Name),
				Column:   f.Name,
			})
		}
		res.Mappings = append(res.Mappings, m)
	}

	return res
}

// mergeAliases returns a copy of fields with extra aliases appended. Extra
// aliases already owned by a different field are dropped with a warning.
func mergeAliases(fields []FieldSpec, extra map[string][]string) ([]FieldSpec, []model.Issue) {
	if len(extra) == 0 {
		return fields, nil
	}
	index, err := buildAliasIndex(fields)
	if err != nil {
		panic("normalize: " + err.Error())
	}

	var issues []model.Issue
	out := make([]FieldSpec, len(fields))
	for i, f := range fields {
		f.Aliases = append([]string(nil), f.Aliases...)
		for _, a := range extra[f.Name] {
			key := NormalizeHeader(a)
			if key == "" {
				continue
			}
			if owner, ok := index[key]; ok && owner.field != f.Name {
				issues = append(issues, model.Issue{
					Type:     model.IssueDuplicateHeader,
					Severity: model.SeverityWarning,
					Message:  fmt.Sprintf("configured alias %q for %q already belongs to %q; ignored", a, f.Name, owner.field),
					Column:   a,
				})
				continue
			}
			index[key] = aliasEntry{field: f.Name, alias: a}
			f.Aliases = append(f.Aliases, a)
		}
		out[i] = f
	}
	return out, issues
}
