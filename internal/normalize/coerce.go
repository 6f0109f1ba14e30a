package normalize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Coercion errors. Each is wrapped with the offending raw value.
var (
	ErrInvalidNumber  = errors.New("invalid number")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidBoolean = errors.New("invalid boolean")
	ErrInvalidString  = errors.New("invalid string")
)

// Coerced is the outcome of coercing one raw cell. Present is false only for
// nil, empty or whitespace-only input; a present value that could not be
// coerced has a nil Value and a non-nil Err.
type Coerced[T any] struct {
	Value   *T
	Present bool
	Err     error
}

// MonthResult is a coerced YYYY-MM value plus the trimmed source text, kept
// whether or not parsing succeeded.
type MonthResult struct {
	Coerced[string]
	Label string
}

func present[T any](v T) Coerced[T] {
	return Coerced[T]{Value: &v, Present: true}
}

func failed[T any](err error) Coerced[T] {
	return Coerced[T]{Present: true, Err: err}
}

func blank(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	return false
}

// CoerceNumber converts raw into a finite float64.
func CoerceNumber(raw any) Coerced[float64] {
	if blank(raw) {
		return Coerced[float64]{}
	}
	switch v := raw.(type) {
	case string:
		f, err := parseMoney(v)
		if err != nil {
			return failed[float64](err)
		}
		return present(f)
	case bool:
		if v {
			return present(1.0)
		}
		return present(0.0)
	}
	f, ok := toFloat(raw)
	if !ok {
		return failed[float64](fmt.Errorf("%w: unsupported value %v (%T)", ErrInvalidNumber, raw, raw))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return failed[float64](fmt.Errorf("%w: %v is not finite", ErrInvalidNumber, f))
	}
	return present(f)
}

// CoerceInteger converts raw into a whole number, rounding half up.
func CoerceInteger(raw any) Coerced[int64] {
	n := CoerceNumber(raw)
	if n.Value == nil {
		return Coerced[int64]{Present: n.Present, Err: n.Err}
	}
	r := math.Floor(*n.Value + 0.5)
	if r >= 1<<63 || r < math.MinInt64 {
		return failed[int64](fmt.Errorf("%w: %v out of integer range", ErrInvalidNumber, *n.Value))
	}
	return present(int64(r))
}

// CoerceMonth converts raw into a canonical YYYY-MM month.
func CoerceMonth(raw any) MonthResult {
	if blank(raw) {
		return MonthResult{}
	}
	switch v := raw.(type) {
	case time.Time:
		m := fromTime(v).monthString()
		return MonthResult{Coerced: present(m), Label: m}
	case string:
		label := strings.TrimSpace(v)
		d, ok := parseCalendar(label)
		if !ok {
			return MonthResult{Coerced: failed[string](fmt.Errorf("%w: unrecognized month %q", ErrInvalidDate, label)), Label: label}
		}
		return MonthResult{Coerced: present(d.monthString()), Label: label}
	}
	label := fmt.Sprint(raw)
	return MonthResult{Coerced: failed[string](fmt.Errorf("%w: unsupported value %v (%T)", ErrInvalidDate, raw, raw)), Label: label}
}

// CoerceDate converts raw into a canonical YYYY-MM-DD date. Month-only input
// resolves to the first of the month.
func CoerceDate(raw any) Coerced[string] {
	if blank(raw) {
		return Coerced[string]{}
	}
	switch v := raw.(type) {
	case time.Time:
		return present(fromTime(v).dateString())
	case string:
		d, ok := parseCalendar(v)
		if !ok {
			return failed[string](fmt.Errorf("%w: unrecognized date %q", ErrInvalidDate, strings.TrimSpace(v)))
		}
		return present(d.dateString())
	}
	return failed[string](fmt.Errorf("%w: unsupported value %v (%T)", ErrInvalidDate, raw, raw))
}

var (
	truthy = map[string]bool{"true": true, "t": true, "yes": true, "y": true, "1": true}
	falsy  = map[string]bool{"false": true, "f": true, "no": true, "n": true, "0": true}
)

// CoerceBoolean converts raw into a bool. Numbers are true when nonzero.
func CoerceBoolean(raw any) Coerced[bool] {
	if blank(raw) {
		return Coerced[bool]{}
	}
	switch v := raw.(type) {
	case bool:
		return present(v)
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		switch {
		case truthy[s]:
			return present(true)
		case falsy[s]:
			return present(false)
		}
		return failed[bool](fmt.Errorf("%w: %q", ErrInvalidBoolean, v))
	}
	f, ok := toFloat(raw)
	if !ok || math.IsNaN(f) {
		return failed[bool](fmt.Errorf("%w: unsupported value %v (%T)", ErrInvalidBoolean, raw, raw))
	}
	return present(f != 0)
}

// CoerceString trims raw. Empty results are absent, not errors.
func CoerceString(raw any) Coerced[string] {
	if blank(raw) {
		return Coerced[string]{}
	}
	switch v := raw.(type) {
	case string:
		return present(strings.TrimSpace(v))
	case bool:
		return present(strconv.FormatBool(v))
	case time.Time:
		u := v.UTC()
		if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
			return present(u.Format("2006-01-02"))
		}
		return present(u.Format(time.RFC3339))
	}
	if f, ok := toFloat(raw); ok {
		return present(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return failed[string](fmt.Errorf("%w: unsupported value %v (%T)", ErrInvalidString, raw, raw))
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}
