package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/becastil/costdash/internal/config"
	"github.com/becastil/costdash/internal/fees"
)

func TestBuildRequest(t *testing.T) {
	b := config.BulkConfig{
		StartMonth: "2025-09",
		Duration:   3,
		Policy:     "additive",
		Missing:    "skip",
		Components: []string{"fees", " rebates", ""},
	}
	req, err := buildRequest(b, true, fees.MonthOverride{})
	require.NoError(t, err)
	assert.Equal(t, fees.PolicyAdditive, req.ConflictPolicy)
	assert.Equal(t, fees.MissingSkip, req.MissingMonthStrategy)
	assert.Equal(t, fees.Components{Fees: true, Rebates: true}, req.Components)
	require.NotNil(t, req.Duration)
	assert.Equal(t, 3, *req.Duration)

	req, err = buildRequest(b, false, fees.MonthOverride{})
	require.NoError(t, err)
	assert.Nil(t, req.Duration, "an unset --duration stays nil")

	b.Components = []string{"wellness"}
	_, err = buildRequest(b, false, fees.MonthOverride{})
	assert.ErrorContains(t, err, "wellness")
}

func TestLoadEnrollment(t *testing.T) {
	list, err := loadEnrollment("", "")
	require.NoError(t, err)
	assert.Nil(t, list)

	path := filepath.Join(t.TempDir(), "budget.csv")
	require.NoError(t, os.WriteFile(path, []byte("month,employee_count,total_enrollment\nSep 2025,101,255\n"), 0o644))
	list, err = loadEnrollment(path, "")
	require.NoError(t, err)
	assert.Equal(t, []fees.MonthlyEnrollment{{Month: "2025-09", EmployeeCount: 101, MemberCount: 255}}, list)
}
