package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/becastil/costdash/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestValidateBudgetRow(t *testing.T) {
	ok := &model.BudgetRow{Month: "2024-02", Budget: ptr(10.0), CreatedAt: ptr("2024-02-01")}
	assert.Empty(t, ValidateBudgetRow(ok))

	bad := &model.BudgetRow{
		Month:     "2024-13",
		Budget:    ptr(math.Inf(1)),
		NetCost:   ptr(math.NaN()),
		UpdatedAt: ptr("2024-02-30"),
	}
	issues := ValidateBudgetRow(bad)
	require.Len(t, issues, 4)
	paths := make([]string, len(issues))
	for i, is := range issues {
		paths[i] = is.Path
	}
	assert.Equal(t, []string{"month", "budget", "netCost", "updatedAt"}, paths)
}

func TestValidateClaimsRow(t *testing.T) {
	ok := &model.ClaimsRow{ClaimID: "C-1", ServiceDate: "2024-02-29", ServiceMonth: "2024-02"}
	assert.Empty(t, ValidateClaimsRow(ok))

	mismatch := &model.ClaimsRow{ClaimID: "C-1", ServiceDate: "2024-02-29", ServiceMonth: "2024-03"}
	issues := ValidateClaimsRow(mismatch)
	require.Len(t, issues, 1)
	assert.Equal(t, "serviceMonth", issues[0].Path)

	empty := &model.ClaimsRow{ServiceDate: "2023-02-29", TotalAmount: ptr(math.NaN())}
	issues = ValidateClaimsRow(empty)
	require.Len(t, issues, 3)
	assert.Equal(t, "claimId", issues[0].Path)
	assert.Equal(t, "serviceDate", issues[1].Path)
	assert.Equal(t, "totalAmount", issues[2].Path)
}
