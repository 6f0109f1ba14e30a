package normalize

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceNumber(t *testing.T) {
	cases := []struct {
		raw  any
		want float64
	}{
		{"($1,200.50)", -1200.50},
		{"1,234", 1234},
		{" $98.10 ", 98.10},
		{"12%", 12},
		{"-3.5", -3.5},
		{42, 42},
		{int64(-7), -7},
		{float32(1.5), 1.5},
		{true, 1},
		{false, 0},
	}
	for _, tc := range cases {
		got := CoerceNumber(tc.raw)
		require.NoError(t, got.Err, "raw %v", tc.raw)
		require.NotNil(t, got.Value, "raw %v", tc.raw)
		assert.True(t, got.Present)
		assert.InDelta(t, tc.want, *got.Value, 1e-9, "raw %v", tc.raw)
	}
}

func TestCoerceNumber_Invalid(t *testing.T) {
	for _, raw := range []any{"N/A", "$", "()", "12abc", math.NaN(), math.Inf(1), []int{1}} {
		got := CoerceNumber(raw)
		assert.Nil(t, got.Value, "raw %v", raw)
		assert.True(t, got.Present, "raw %v", raw)
		assert.ErrorIs(t, got.Err, ErrInvalidNumber, "raw %v", raw)
	}
}

func TestCoerceNumber_Absent(t *testing.T) {
	for _, raw := range []any{nil, "", "   "} {
		got := CoerceNumber(raw)
		assert.Nil(t, got.Value)
		assert.False(t, got.Present)
		assert.NoError(t, got.Err)
	}
}

func TestCoerceInteger_RoundsHalfUp(t *testing.T) {
	cases := map[string]int64{
		"2.5":   3,
		"41.4":  41,
		"1,250": 1250,
		"-2.5":  -2,
		"0":     0,
	}
	for raw, want := range cases {
		got := CoerceInteger(raw)
		require.NotNil(t, got.Value, raw)
		assert.Equal(t, want, *got.Value, raw)
	}

	bad := CoerceInteger("lots")
	assert.Nil(t, bad.Value)
	assert.ErrorIs(t, bad.Err, ErrInvalidNumber)
}

func TestCoerceInteger_OutOfRange(t *testing.T) {
	for _, raw := range []string{"9223372036854775807", "9223372036854775808", "1e19", "-1e19"} {
		got := CoerceInteger(raw)
		assert.Nil(t, got.Value, raw)
		assert.ErrorIs(t, got.Err, ErrInvalidNumber, raw)
	}

	low := CoerceInteger("-9223372036854775808")
	require.NotNil(t, low.Value)
	assert.Equal(t, int64(math.MinInt64), *low.Value)
}

func TestCoerceMonth(t *testing.T) {
	cases := map[string]string{
		"Aug 2023":    "2023-08",
		"2023-08":     "2023-08",
		"08/2023":     "2023-08",
		"8-2023":      "2023-08",
		"2023/8":      "2023-08",
		"August 2023": "2023-08",
		"Sept. 2023":  "2023-09",
		"2023-08-18":  "2023-08",
		"1/15/2024":   "2024-01",
		"Dec, 2022":   "2022-12",
	}
	for raw, want := range cases {
		got := CoerceMonth(raw)
		require.NoError(t, got.Err, raw)
		require.NotNil(t, got.Value, raw)
		assert.Equal(t, want, *got.Value, raw)
		assert.Equal(t, raw, got.Label)
	}
}

func TestCoerceMonth_TimeValue(t *testing.T) {
	got := CoerceMonth(time.Date(2023, 8, 31, 23, 0, 0, 0, time.UTC))
	require.NotNil(t, got.Value)
	assert.Equal(t, "2023-08", *got.Value)
	assert.Equal(t, "2023-08", got.Label)
}

func TestCoerceMonth_KeepsLabelOnFailure(t *testing.T) {
	got := CoerceMonth("  not a month ")
	assert.Nil(t, got.Value)
	assert.True(t, got.Present)
	assert.ErrorIs(t, got.Err, ErrInvalidDate)
	assert.Equal(t, "not a month", got.Label)

	got = CoerceMonth("2023-13")
	assert.Nil(t, got.Value)
	assert.ErrorIs(t, got.Err, ErrInvalidDate)
}

func TestCoerceDate(t *testing.T) {
	cases := map[string]string{
		"2023-08-18 00:00:00":       "2023-08-18",
		"2023-08-18":                "2023-08-18",
		"2023/8/1":                  "2023-08-01",
		"8/18/2023":                 "2023-08-18",
		"August 18, 2023":           "2023-08-18",
		"2023-08":                   "2023-08-01",
		"2024-03-05T10:00:00Z":      "2024-03-05",
		"2024-03-05T01:00:00+05:00": "2024-03-04",
	}
	for raw, want := range cases {
		got := CoerceDate(raw)
		require.NoError(t, got.Err, raw)
		require.NotNil(t, got.Value, raw)
		assert.Equal(t, want, *got.Value, raw)
	}
}

func TestCoerceDate_Invalid(t *testing.T) {
	for _, raw := range []any{"2023-02-30", "yesterday", "2023-00-10", 12.5} {
		got := CoerceDate(raw)
		assert.Nil(t, got.Value, "raw %v", raw)
		assert.ErrorIs(t, got.Err, ErrInvalidDate, "raw %v", raw)
	}
}

func TestCoerceBoolean(t *testing.T) {
	cases := []struct {
		raw  any
		want bool
	}{
		{"TRUE", true},
		{"yes", true},
		{" Y ", true},
		{"1", true},
		{"f", false},
		{"No", false},
		{"0", false},
		{true, true},
		{0, false},
		{2.5, true},
	}
	for _, tc := range cases {
		got := CoerceBoolean(tc.raw)
		require.NoError(t, got.Err, "raw %v", tc.raw)
		require.NotNil(t, got.Value, "raw %v", tc.raw)
		assert.Equal(t, tc.want, *got.Value, "raw %v", tc.raw)
	}

	bad := CoerceBoolean("maybe")
	assert.Nil(t, bad.Value)
	assert.True(t, bad.Present)
	assert.ErrorIs(t, bad.Err, ErrInvalidBoolean)

	assert.False(t, CoerceBoolean("").Present)
}

func TestCoerceString(t *testing.T) {
	got := CoerceString("  C-1001 ")
	require.NotNil(t, got.Value)
	assert.Equal(t, "C-1001", *got.Value)

	blankValue := CoerceString("   ")
	assert.Nil(t, blankValue.Value)
	assert.False(t, blankValue.Present)
	assert.NoError(t, blankValue.Err)

	num := CoerceString(1.5)
	require.NotNil(t, num.Value)
	assert.Equal(t, "1.5", *num.Value)

	whole := CoerceString(int64(42))
	require.NotNil(t, whole.Value)
	assert.Equal(t, "42", *whole.Value)

	day := CoerceString(time.Date(2023, 8, 18, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, day.Value)
	assert.Equal(t, "2023-08-18", *day.Value)

	bad := CoerceString(struct{}{})
	assert.Nil(t, bad.Value)
	assert.ErrorIs(t, bad.Err, ErrInvalidString)
}
