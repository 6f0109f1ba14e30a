package fees

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApplier() *Applier {
	return &Applier{
		NewID:          seqID("id-"),
		Now:            func() time.Time { return time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC) },
		MaxRangeMonths: DefaultMaxRangeMonths,
	}
}

func allComponents() Components {
	return Components{Fees: true, Budget: true, StopLossReimb: true, Rebates: true}
}

func fixtureConfig() FeesConfig {
	return FeesConfig{
		Fees: FeeList{{ID: "admin", Label: "Admin Fee", Amount: 14, Basis: BasisPEPM}},
		PerMonth: map[string]MonthOverride{
			"2025-08": {
				Fees:          FeeList{{ID: "admin", Label: "Admin Fee", Amount: 12, Basis: BasisPEPM}},
				StopLossReimb: fp(1000),
			},
		},
	}
}

func fixtureRequest() BulkApplyConfig {
	return BulkApplyConfig{
		StartMonth:           "2025-09",
		Duration:             intp(2),
		Components:           allComponents(),
		ConflictPolicy:       PolicyOverwrite,
		MissingMonthStrategy: MissingCreate,
		Source: MonthOverride{
			Fees:           FeeList{{ID: "admin", Label: "Admin Fee", Amount: 15, Basis: BasisPEPM}},
			BudgetOverride: &BudgetOverride{Amount: 300000, Basis: BasisMonthly},
			StopLossReimb:  fp(2000),
			Rebates:        fp(500),
		},
	}
}

func fixtureEnrollment() []MonthlyEnrollment {
	return []MonthlyEnrollment{
		{Month: "2025-09", EmployeeCount: 101, MemberCount: 255},
		{Month: "2025-10", EmployeeCount: 103, MemberCount: 260},
	}
}

func TestExecute_OverwriteEndToEnd(t *testing.T) {
	current := fixtureConfig()
	res := testApplier().Execute(current, fixtureRequest(), fixtureEnrollment())

	require.True(t, res.Success, res.Errors)
	assert.Equal(t, []string{"2025-09", "2025-10"}, res.MonthsUpdated)
	assert.Empty(t, res.MonthsSkipped)

	sep := res.UpdatedConfig.PerMonth["2025-09"]
	admin, ok := sep.Fees.ByID("admin")
	require.True(t, ok)
	assert.Equal(t, 15.0, admin.Amount)
	require.NotNil(t, sep.BudgetOverride)
	assert.Equal(t, 300000.0, sep.BudgetOverride.Amount)
	require.NotNil(t, sep.StopLossReimb)
	assert.Equal(t, 2000.0, *sep.StopLossReimb)
	require.NotNil(t, sep.Rebates)
	assert.Equal(t, 500.0, *sep.Rebates)

	assert.Equal(t, current.PerMonth["2025-08"], res.UpdatedConfig.PerMonth["2025-08"])
	assert.Len(t, current.PerMonth, 1, "input config must not change")

	audit := res.AuditLog
	assert.Equal(t, "id-1", audit.ID)
	assert.Equal(t, "2025-09", audit.StartMonth)
	assert.Equal(t, "2025-10", audit.EndMonth)
	assert.Equal(t, PolicyOverwrite, audit.ConflictPolicy)
	assert.Equal(t, []Component{ComponentFees, ComponentBudget, ComponentStopLossReimb, ComponentRebates}, audit.Components)
	require.Contains(t, audit.Previous, "2025-09")
	assert.False(t, audit.Previous["2025-09"].Existed)
}

func TestExecute_InvalidRequestLeavesConfig(t *testing.T) {
	req := fixtureRequest()
	req.EndMonth = "2025-12"
	current := fixtureConfig()

	res := testApplier().Execute(current, req, fixtureEnrollment())
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Errors)
	assert.Empty(t, res.MonthsUpdated)
	assert.Equal(t, current, res.UpdatedConfig)
}

func TestExecute_MissingMonthStrategies(t *testing.T) {
	enrollment := []MonthlyEnrollment{{Month: "2025-09", EmployeeCount: 10, MemberCount: 20}}

	req := fixtureRequest()
	req.MissingMonthStrategy = MissingSkip
	res := testApplier().Execute(fixtureConfig(), req, enrollment)
	assert.True(t, res.Success)
	assert.Equal(t, []string{"2025-09"}, res.MonthsUpdated)
	assert.Equal(t, []string{"2025-10"}, res.MonthsSkipped)
	assert.NotContains(t, res.UpdatedConfig.PerMonth, "2025-10")

	req.MissingMonthStrategy = MissingBlock
	res = testApplier().Execute(fixtureConfig(), req, enrollment)
	assert.False(t, res.Success)
	assert.Equal(t, []string{"2025-09"}, res.MonthsUpdated, "other months still apply")
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "2025-10")

	req.MissingMonthStrategy = MissingCreate
	res = testApplier().Execute(fixtureConfig(), req, enrollment)
	assert.True(t, res.Success)
	assert.Equal(t, []string{"2025-09", "2025-10"}, res.MonthsUpdated)
}

func TestExecute_AdditiveOntoExistingMonth(t *testing.T) {
	current := fixtureConfig()
	current.PerMonth["2025-09"] = MonthOverride{
		Fees:           FeeList{{ID: "admin", Label: "Admin Fee", Amount: 14, Basis: BasisPEPM}},
		BudgetOverride: &BudgetOverride{Amount: 250000, Basis: BasisMonthly},
	}
	req := fixtureRequest()
	req.Duration = intp(1)
	req.ConflictPolicy = PolicyAdditive

	res := testApplier().Execute(current, req, fixtureEnrollment())
	require.True(t, res.Success)
	sep := res.UpdatedConfig.PerMonth["2025-09"]
	require.Len(t, sep.Fees, 1)
	assert.Equal(t, 29.0, sep.Fees[0].Amount)
	assert.Equal(t, 550000.0, sep.BudgetOverride.Amount)
	assert.Equal(t, 14.0, current.PerMonth["2025-09"].Fees[0].Amount)
	assert.True(t, res.AuditLog.Previous["2025-09"].Existed)
}

func TestValidate_Errors(t *testing.T) {
	a := testApplier()

	v := a.Validate(BulkApplyConfig{ConflictPolicy: PolicyOverwrite}, nil)
	assert.False(t, v.IsValid)
	assert.Contains(t, v.Errors, "start month is required")
	assert.Contains(t, v.Errors, "select at least one component to apply")

	req := fixtureRequest()
	req.EndMonth = "2025-08"
	req.Duration = nil
	v = a.Validate(req, fixtureEnrollment())
	assert.False(t, v.IsValid)
	assert.Contains(t, v.Errors, "end month 2025-08 is before start month 2025-09")

	req = fixtureRequest()
	req.Duration = intp(0)
	v = a.Validate(req, fixtureEnrollment())
	assert.Contains(t, v.Errors, "duration must be at least 1 month")

	req = fixtureRequest()
	req.EndMonth = "2025-10"
	v = a.Validate(req, fixtureEnrollment())
	assert.Contains(t, v.Errors, "specify a duration or an end month, not both")

	req = fixtureRequest()
	req.ConflictPolicy = "MERGE"
	req.Source.Fees[0].Basis = "Weekly"
	v = a.Validate(req, fixtureEnrollment())
	assert.Len(t, v.Errors, 2)

	req = fixtureRequest()
	req.Duration = intp(121)
	v = a.Validate(req, nil)
	assert.False(t, v.IsValid)
}

func TestValidate_RangeLimitCheckedBeforeExpanding(t *testing.T) {
	a := testApplier()

	req := fixtureRequest()
	req.Duration = intp(1_000_000_000)
	began := time.Now()
	v := a.Validate(req, nil)
	assert.Less(t, time.Since(began), time.Second)
	assert.False(t, v.IsValid)
	assert.Contains(t, v.Errors, "range covers 1000000000 months; the limit is 120")
	assert.Nil(t, a.Preview(fixtureConfig(), req, nil))

	res := a.Execute(fixtureConfig(), req, nil)
	assert.False(t, res.Success)
	assert.Empty(t, res.MonthsUpdated)

	req = fixtureRequest()
	req.Duration = nil
	req.EndMonth = "9999-12"
	v = a.Validate(req, nil)
	assert.False(t, v.IsValid)
	assert.Contains(t, v.Errors, "range covers 95692 months; the limit is 120")
}

func TestValidate_Warnings(t *testing.T) {
	a := testApplier()

	req := fixtureRequest()
	req.Duration = nil
	v := a.Validate(req, fixtureEnrollment())
	assert.True(t, v.IsValid)
	require.Len(t, v.Warnings, 1)
	assert.Contains(t, v.Warnings[0], "2025-09 only")

	req = fixtureRequest()
	v = a.Validate(req, fixtureEnrollment()[:1])
	require.Len(t, v.Warnings, 1)
	assert.Contains(t, v.Warnings[0], "2025-10")
	assert.NotContains(t, v.Warnings[0], "2025-09")

	// The PEPM source fee does not count when fees are not applied.
	req.Components.Fees = false
	v = a.Validate(req, nil)
	assert.Empty(t, v.Warnings)
}

func TestPreview(t *testing.T) {
	current := fixtureConfig()
	current.PerMonth["2025-09"] = MonthOverride{
		Fees: FeeList{{ID: "admin", Label: "Admin Fee", Amount: 15, Basis: BasisPEPM}},
	}
	req := fixtureRequest()
	req.Components = Components{Fees: true}

	snaps := testApplier().Preview(current, req, fixtureEnrollment()[:1])
	require.Len(t, snaps, 2)

	sep := snaps[0]
	assert.Equal(t, "2025-09", sep.Month)
	assert.False(t, sep.HasChanges)
	require.NotNil(t, sep.Enrollment)
	assert.Equal(t, 1515.0, sep.CurrentTotalFixed)
	assert.Equal(t, 1515.0, sep.NewTotalFixed)
	assert.Empty(t, sep.Warnings)

	oct := snaps[1]
	assert.True(t, oct.HasChanges)
	assert.Nil(t, oct.Enrollment)
	assert.Equal(t, 0.0, oct.NewTotalFixed)
	require.Len(t, oct.Warnings, 1)
	assert.Contains(t, oct.Warnings[0], "2025-10")

	assert.NotContains(t, current.PerMonth, "2025-10", "preview must not mutate")
}

func TestRollback(t *testing.T) {
	current := fixtureConfig()
	current.PerMonth["2025-09"] = MonthOverride{Rebates: fp(100)}
	req := fixtureRequest()

	res := testApplier().Execute(current, req, fixtureEnrollment())
	require.True(t, res.Success)

	restored := Rollback(res.UpdatedConfig, res.AuditLog)
	assert.Equal(t, current, restored)
	assert.NotEqual(t, current, res.UpdatedConfig)
}
