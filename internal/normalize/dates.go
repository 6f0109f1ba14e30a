package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	multiSpace     = regexp.MustCompile(`\s+`)
	reYearMonth    = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})$`)
	reMonthYear    = regexp.MustCompile(`^(\d{1,2})[-/](\d{4})$`)
	reYearMonthDay = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})(?:[T ]\d{1,2}:\d{2}(?::\d{2}(?:\.\d+)?)?Z?)?$`)
	reNamedMonth   = regexp.MustCompile(`^([A-Za-z]+)\.?[\s,-]+(\d{4})$`)
)

// Layouts tried after the structured patterns, in order.
var dateFormats = []string{
	"1/2/2006",
	"1-2-2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/06",
	"January 2, 2006",
	"Jan 2, 2006",
	"Jan. 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2-Jan-2006",
	"Mon Jan 2 2006",
	"Mon, 02 Jan 2006 15:04:05 MST",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
	"20060102",
}

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// calendarDate is a parsed date. HasDay is false for month-only input.
type calendarDate struct {
	Year   int
	Month  time.Month
	Day    int
	HasDay bool
}

func (d calendarDate) monthString() string {
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

func (d calendarDate) dateString() string {
	day := d.Day
	if !d.HasDay {
		day = 1
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), day)
}

// parseCalendar recognizes the month and date spellings found in budget and
// claims exports. Time-of-day is discarded; zoned timestamps resolve to their
// UTC calendar date.
func parseCalendar(s string) (calendarDate, bool) {
	s = multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
	if s == "" {
		return calendarDate{}, false
	}

	if m := reYearMonthDay.FindStringSubmatch(s); m != nil {
		return validDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := reYearMonth.FindStringSubmatch(s); m != nil {
		return validMonth(atoi(m[1]), atoi(m[2]))
	}
	if m := reMonthYear.FindStringSubmatch(s); m != nil {
		return validMonth(atoi(m[2]), atoi(m[1]))
	}
	if m := reNamedMonth.FindStringSubmatch(s); m != nil {
		if month, ok := monthNames[strings.ToLower(m[1])]; ok {
			return validMonth(atoi(m[2]), int(month))
		}
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return fromTime(t), true
		}
	}
	return calendarDate{}, false
}

func fromTime(t time.Time) calendarDate {
	t = t.UTC()
	return calendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day(), HasDay: true}
}

func validMonth(year, month int) (calendarDate, bool) {
	if month < 1 || month > 12 {
		return calendarDate{}, false
	}
	return calendarDate{Year: year, Month: time.Month(month)}, true
}

func validDate(year, month, day int) (calendarDate, bool) {
	if month < 1 || month > 12 || day < 1 {
		return calendarDate{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return calendarDate{}, false
	}
	return calendarDate{Year: year, Month: time.Month(month), Day: day, HasDay: true}, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
