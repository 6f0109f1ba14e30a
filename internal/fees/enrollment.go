package fees

import (
	"sort"

	"github.com/becastil/costdash/internal/model"
	"github.com/becastil/costdash/internal/normalize"
)

// MonthlyEnrollment is the headcount for one month.
type MonthlyEnrollment struct {
	Month         string `json:"month" yaml:"month"`
	EmployeeCount int64  `json:"employeeCount" yaml:"employeeCount"`
	MemberCount   int64  `json:"memberCount" yaml:"memberCount"`
}

var enrollmentFields = []string{"month", "employeeCount", "memberCount", "totalEnrollment"}

// ExtractEnrollment reads per-month headcounts from a raw budget dataset,
// resolving headers with the budget alias table in file order, so the first
// of two columns aliasing the same field wins. A dataset without Headers falls
// back to the sorted union of row keys. Member count falls back to the total
// enrollment column when the file has no member count column. Rows without a
// parsable month or without any count are skipped, and the first row for a
// month wins. The result is sorted by month.
func ExtractEnrollment(ds model.Dataset) []MonthlyEnrollment {
	rows := ds.Rows
	specs := make([]normalize.FieldSpec, 0, len(enrollmentFields))
	for _, name := range enrollmentFields {
		f, _ := normalize.BudgetTable.Field(name)
		specs = append(specs, f.FieldSpec)
	}
	headers := ds.Headers
	if len(headers) == 0 {
		headers = unionKeys(rows)
	}
	res := normalize.ResolveHeaders(headers, specs)

	monthCol, ok := res.Lookup["month"]
	if !ok {
		return nil
	}
	employeeCol, hasEmployees := res.Lookup["employeeCount"]
	memberCol, hasMembers := res.Lookup["memberCount"]
	if !hasMembers {
		memberCol, hasMembers = res.Lookup["totalEnrollment"]
	}

	seen := make(map[string]bool)
	var out []MonthlyEnrollment
	for _, row := range rows {
		month := normalize.CoerceMonth(row[monthCol.Header]).Value
		if month == nil || seen[*month] {
			continue
		}
		e := MonthlyEnrollment{Month: *month}
		counted := false
		if hasEmployees {
			if n := normalize.CoerceInteger(row[employeeCol.Header]).Value; n != nil {
				e.EmployeeCount, counted = *n, true
			}
		}
		if hasMembers {
			if n := normalize.CoerceInteger(row[memberCol.Header]).Value; n != nil {
				e.MemberCount, counted = *n, true
			}
		}
		if !counted {
			continue
		}
		seen[*month] = true
		out = append(out, e)
	}
	sortEnrollment(out)
	return out
}

// EnrollmentFromBudgetRows is ExtractEnrollment over canonical rows. Member
// count falls back to total enrollment per row.
func EnrollmentFromBudgetRows(rows []model.BudgetRow) []MonthlyEnrollment {
	seen := make(map[string]bool)
	var out []MonthlyEnrollment
	for _, r := range rows {
		if seen[r.Month] {
			continue
		}
		members := r.MemberCount
		if members == nil {
			members = r.TotalEnrollment
		}
		if r.EmployeeCount == nil && members == nil {
			continue
		}
		e := MonthlyEnrollment{Month: r.Month}
		if r.EmployeeCount != nil {
			e.EmployeeCount = *r.EmployeeCount
		}
		if members != nil {
			e.MemberCount = *members
		}
		seen[r.Month] = true
		out = append(out, e)
	}
	sortEnrollment(out)
	return out
}

// IndexEnrollment keys enrollment by month.
func IndexEnrollment(list []MonthlyEnrollment) map[string]MonthlyEnrollment {
	idx := make(map[string]MonthlyEnrollment, len(list))
	for _, e := range list {
		if _, ok := idx[e.Month]; !ok {
			idx[e.Month] = e
		}
	}
	return idx
}

func sortEnrollment(list []MonthlyEnrollment) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Month < list[j].Month })
}

func unionKeys(rows []model.Row) []string {
	set := make(map[string]struct{})
	for _, r := range rows {
		for k := range r {
			set[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
