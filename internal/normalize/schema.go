package normalize

import (
	"fmt"
	"math"
	"regexp"
	"sort"

	"github.com/becastil/costdash/internal/model"
)

var (
	reCanonicalMonth = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	reCanonicalDate  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// SchemaIssue is one violated constraint on a candidate row. Path is the
// canonical field name.
type SchemaIssue struct {
	Path    string
	Message string
}

// ValidateBudgetRow checks the structural contract of a budget row.
func ValidateBudgetRow(r *model.BudgetRow) []SchemaIssue {
	var out []SchemaIssue
	if !reCanonicalMonth.MatchString(r.Month) {
		out = append(out, SchemaIssue{Path: "month", Message: fmt.Sprintf("month %q is not YYYY-MM", r.Month)})
	}
	out = append(out, checkFinite(r.MonetaryFields())...)
	out = append(out, checkDates(r.DateFields())...)
	return out
}

// ValidateClaimsRow checks the structural contract of a claims row.
func ValidateClaimsRow(r *model.ClaimsRow) []SchemaIssue {
	var out []SchemaIssue
	if r.ClaimID == "" {
		out = append(out, SchemaIssue{Path: "claimId", Message: "claim id is empty"})
	}
	if !isISODate(r.ServiceDate) {
		out = append(out, SchemaIssue{Path: "serviceDate", Message: fmt.Sprintf("service date %q is not YYYY-MM-DD", r.ServiceDate)})
	} else if r.ServiceMonth != r.ServiceDate[:7] {
		out = append(out, SchemaIssue{Path: "serviceMonth", Message: fmt.Sprintf("service month %q does not match service date %q", r.ServiceMonth, r.ServiceDate)})
	}
	out = append(out, checkFinite(r.NumericFields())...)
	out = append(out, checkDates(r.DateFields())...)
	return out
}

func isISODate(s string) bool {
	if !reCanonicalDate.MatchString(s) {
		return false
	}
	_, ok := validDate(atoi(s[0:4]), atoi(s[5:7]), atoi(s[8:10]))
	return ok
}

func checkFinite(fields map[string]*float64) []SchemaIssue {
	var out []SchemaIssue
	for _, name := range sortedKeys(fields) {
		v := fields[name]
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			out = append(out, SchemaIssue{Path: name, Message: fmt.Sprintf("%s is not a finite number", name)})
		}
	}
	return out
}

func checkDates(fields map[string]*string) []SchemaIssue {
	var out []SchemaIssue
	for _, name := range sortedKeys(fields) {
		v := fields[name]
		if v != nil && !isISODate(*v) {
			out = append(out, SchemaIssue{Path: name, Message: fmt.Sprintf("%s %q is not YYYY-MM-DD", name, *v)})
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
