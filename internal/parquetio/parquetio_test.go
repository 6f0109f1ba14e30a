package parquetio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/becastil/costdash/internal/model"
)

func fp(v float64) *float64 { return &v }
func ip(v int64) *int64 { return &v }
func sp(v string) *string { return &v }
func bp(v bool) *bool { return &v }

func TestBudgetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.parquet")
	rows := []model.BudgetRow{
		{Month: "2024-01", SourceMonthLabel: "Jan 2024", Budget: fp(150000), EmployeeCount: ip(120), CreatedAt: sp("2024-02-01")},
		{Month: "2024-02", SourceMonthLabel: "Feb 2024", LossRatio: fp(0.87)},
	}
	require.NoError(t, WriteBudget(path, rows))

	got, err := ReadAll[model.BudgetRow](path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestClaimsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claims.parquet")
	rows := []model.ClaimsRow{
		{ClaimID: "C-1", ServiceDate: "2023-08-18", ServiceMonth: "2023-08", DomesticFlag: bp(true), TotalAmount: fp(1150)},
		{ClaimID: "C-2", ServiceDate: "2023-09-01", ServiceMonth: "2023-09", DiagnosisCode: sp("E11.9")},
	}
	require.NoError(t, WriteClaims(path, rows))

	r, err := Open[model.ClaimsRow](path)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, int64(2), r.NumRows())

	got, err := ReadAll[model.ClaimsRow](path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open[model.BudgetRow](filepath.Join(t.TempDir(), "none.parquet"))
	assert.Error(t, err)
}
