package fees

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(n int) *int { return &n }

func TestExpandMonths(t *testing.T) {
	assert.Equal(t, []string{"2025-09", "2025-10"}, ExpandMonths("2025-09", intp(2), ""))
	assert.Equal(t, []string{"2025-11", "2025-12", "2026-01"}, ExpandMonths("2025-11", intp(3), ""))
	assert.Equal(t, []string{"2024-03"}, ExpandMonths("2024-03", nil, ""))
	assert.Equal(t, []string{"2024-11", "2024-12", "2025-01", "2025-02"}, ExpandMonths("2024-11", nil, "2025-02"))
	assert.Equal(t, []string{"2024-05"}, ExpandMonths("2024-05", nil, "2024-05"))
}

func TestExpandMonths_Empty(t *testing.T) {
	assert.Nil(t, ExpandMonths("", intp(2), ""))
	assert.Nil(t, ExpandMonths("Sept 2025", nil, ""))
	assert.Nil(t, ExpandMonths("2025-13", nil, ""))
	assert.Nil(t, ExpandMonths("2025-05", nil, "2025-04"))
	assert.Nil(t, ExpandMonths("2025-05", nil, "soon"))
	assert.Nil(t, ExpandMonths("2025-05", intp(0), ""))
}

func TestMonthCount(t *testing.T) {
	assert.Equal(t, 2, MonthCount("2025-09", intp(2), ""))
	assert.Equal(t, 1, MonthCount("2024-03", nil, ""))
	assert.Equal(t, 4, MonthCount("2024-11", nil, "2025-02"))
	assert.Equal(t, 2_000_000_000, MonthCount("2024-11", intp(2_000_000_000), ""))
	assert.Equal(t, 0, MonthCount("2025-05", nil, "2025-04"))
	assert.Equal(t, 0, MonthCount("2025-05", intp(0), ""))
	assert.Equal(t, 0, MonthCount("soon", intp(3), ""))

	for _, d := range []int{1, 7, 40} {
		assert.Len(t, ExpandMonths("2019-07", intp(d), ""), MonthCount("2019-07", intp(d), ""))
	}
}

func TestExpandMonths_Ascending(t *testing.T) {
	months := ExpandMonths("2019-07", intp(40), "")
	require.Len(t, months, 40)
	for i := 1; i < len(months); i++ {
		assert.Less(t, months[i-1], months[i])
	}
	assert.Equal(t, "2022-10", months[39])
}

func TestMonthArithmetic(t *testing.T) {
	m, err := ParseMonth("2024-12")
	require.NoError(t, err)
	assert.Equal(t, Month{Year: 2024, Month: 12}, m)
	assert.Equal(t, "2025-01", FormatMonth(AddMonths(m, 1)))
	assert.Equal(t, "2023-12", AddMonths(m, -12).String())
	assert.Equal(t, 0, CompareMonths(m, Month{Year: 2024, Month: 12}))
	assert.Equal(t, -1, CompareMonths(m, AddMonths(m, 1)))
	assert.Equal(t, 1, CompareMonths(m, AddMonths(m, -1)))

	_, err = ParseMonth("2024-00")
	assert.Error(t, err)
	_, err = ParseMonth("2024-1")
	assert.Error(t, err)
}
