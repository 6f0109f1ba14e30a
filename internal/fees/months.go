package fees

import (
	"fmt"
	"regexp"
	"strconv"
)

var reMonth = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// Month is a calendar month.
type Month struct {
	Year  int
	Month int
}

// ParseMonth reads a canonical YYYY-MM token.
func ParseMonth(s string) (Month, error) {
	m := reMonth.FindStringSubmatch(s)
	if m == nil {
		return Month{}, fmt.Errorf("month %q is not YYYY-MM", s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("month %q is out of range", s)
	}
	return Month{Year: year, Month: month}, nil
}

// FormatMonth renders m as YYYY-MM.
func FormatMonth(m Month) string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

func (m Month) String() string { return FormatMonth(m) }

// AddMonths moves m by n months, carrying into the year.
func AddMonths(m Month, n int) Month {
	idx := m.Year*12 + (m.Month - 1) + n
	return Month{Year: idx / 12, Month: idx%12 + 1}
}

// CompareMonths returns -1, 0 or 1.
func CompareMonths(a, b Month) int {
	ai, bi := a.Year*12+a.Month, b.Year*12+b.Month
	switch {
	case ai < bi:
		return -1
	case ai > bi:
		return 1
	}
	return 0
}

// monthsBetween counts the months from a to b inclusive.
func monthsBetween(a, b Month) int {
	return (b.Year*12 + b.Month) - (a.Year*12 + a.Month) + 1
}

// MonthCount returns how many months ExpandMonths would list for the same
// arguments without building the list. It returns 0 when ExpandMonths would
// return nil.
func MonthCount(start string, duration *int, endMonth string) int {
	from, err := ParseMonth(start)
	if err != nil {
		return 0
	}
	switch {
	case endMonth != "":
		to, err := ParseMonth(endMonth)
		if err != nil || CompareMonths(to, from) < 0 {
			return 0
		}
		return monthsBetween(from, to)
	case duration != nil:
		if *duration < 1 {
			return 0
		}
		return *duration
	}
	return 1
}

// ExpandMonths lists every month from start through the inclusive end. The end
// is endMonth when set, otherwise start plus duration-1, otherwise start. It
// returns nil when start or a non-empty endMonth does not parse, when end
// precedes start, or when duration is below one.
func ExpandMonths(start string, duration *int, endMonth string) []string {
	from, err := ParseMonth(start)
	if err != nil {
		return nil
	}

	to := from
	switch {
	case endMonth != "":
		to, err = ParseMonth(endMonth)
		if err != nil {
			return nil
		}
	case duration != nil:
		if *duration < 1 {
			return nil
		}
		to = AddMonths(from, *duration-1)
	}
	if CompareMonths(to, from) < 0 {
		return nil
	}

	out := make([]string, 0, monthsBetween(from, to))
	for m := from; CompareMonths(m, to) <= 0; m = AddMonths(m, 1) {
		out = append(out, FormatMonth(m))
	}
	return out
}
