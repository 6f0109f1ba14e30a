package fees

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func seqID(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + string(rune('0'+n))
	}
}

func TestMonthlyFromBasis(t *testing.T) {
	assert.Equal(t, 1212.0, MonthlyFromBasis(12, BasisPEPM, 101, 255))
	assert.Equal(t, 3060.0, MonthlyFromBasis(12, BasisPMPM, 101, 255))
	assert.Equal(t, 8000.0, MonthlyFromBasis(8000, BasisMonthly, 3, 9))
	assert.Equal(t, 100.0, MonthlyFromBasis(1200, BasisAnnual, 0, 0))
	assert.Equal(t, 0.0, MonthlyFromBasis(12, BasisPEPM, -5, 10))
	assert.Equal(t, 120.0, MonthlyFromBasis(12, BasisPMPM, 0, 10.9))
	assert.Equal(t, 0.0, MonthlyFromBasis(12, RateBasis("Weekly"), 10, 10))
}

func TestFixedTotal(t *testing.T) {
	fees := []FeeItem{
		{Label: "Admin Fee", Amount: 15, Basis: BasisPEPM},
		{Label: "Network", Amount: 2.5, Basis: BasisPMPM},
		{Label: "Consulting", Amount: 1200, Basis: BasisAnnual},
	}
	e := &MonthlyEnrollment{Month: "2025-01", EmployeeCount: 100, MemberCount: 240}
	assert.Equal(t, 1500.0+600.0+100.0, FixedTotal(fees, e))
	assert.Equal(t, 100.0, FixedTotal(fees, nil))
}

func TestMergeFees_Additive(t *testing.T) {
	current := FeeList{{ID: "admin", Label: "Admin Fee", Amount: 14, Basis: BasisPEPM}}
	source := FeeList{
		{ID: "admin", Label: "Admin Fee", Amount: 15, Basis: BasisMonthly},
		{ID: "admin", Label: "Wellness", Amount: 3, Basis: BasisPMPM},
	}
	got := MergeFees(current, source, PolicyAdditive, seqID("new-"))

	require.Len(t, got, 2)
	assert.Equal(t, 29.0, got[0].Amount)
	assert.Equal(t, BasisPEPM, got[0].Basis, "basis is left as-is")
	assert.Equal(t, "Wellness", got[1].Label)
	assert.Equal(t, "new-1", got[1].ID)
	assert.Equal(t, 14.0, current[0].Amount, "input must not change")
}

func TestMergeFees_OverwriteAndFillBlanks(t *testing.T) {
	current := FeeList{{ID: "a", Label: "Admin Fee", Amount: 14, Basis: BasisPEPM}}
	source := FeeList{{ID: "b", Label: "Carrier", Amount: 9, Basis: BasisMonthly}}

	over := MergeFees(current, source, PolicyOverwrite, nil)
	assert.Equal(t, source, over)
	over[0].Amount = 1
	assert.Equal(t, 9.0, source[0].Amount)

	assert.Equal(t, current, MergeFees(current, source, PolicyFillBlanksOnly, nil))
	assert.Equal(t, source, MergeFees(nil, source, PolicyFillBlanksOnly, nil))
	assert.Equal(t, source, MergeFees(FeeList{}, source, PolicyFillBlanksOnly, nil))
}

func TestMergeScalar(t *testing.T) {
	assert.Equal(t, 300000.0, *MergeScalar(fp(250000), fp(300000), PolicyOverwrite))
	assert.Equal(t, 250000.0, *MergeScalar(fp(250000), fp(300000), PolicyFillBlanksOnly))
	assert.Equal(t, 300000.0, *MergeScalar(fp(0), fp(300000), PolicyFillBlanksOnly))
	assert.Equal(t, 300000.0, *MergeScalar(nil, fp(300000), PolicyFillBlanksOnly))
	assert.Equal(t, 550000.0, *MergeScalar(fp(250000), fp(300000), PolicyAdditive))
	assert.Equal(t, 0.3, *MergeScalar(fp(0.1), fp(0.2), PolicyAdditive))
	assert.Equal(t, 500.0, *MergeScalar(nil, fp(500), PolicyAdditive))
	assert.Equal(t, 250000.0, *MergeScalar(fp(250000), nil, PolicyOverwrite))
	assert.Nil(t, MergeScalar(nil, nil, PolicyAdditive))
}

func TestMergeBudget(t *testing.T) {
	current := &BudgetOverride{Amount: 250000, Basis: BasisMonthly}
	source := &BudgetOverride{Amount: 300000, Basis: BasisAnnual}

	assert.Equal(t, source, MergeBudget(current, source, PolicyOverwrite))
	assert.Equal(t, current, MergeBudget(current, source, PolicyFillBlanksOnly))
	assert.Equal(t, source, MergeBudget(&BudgetOverride{Basis: BasisMonthly}, source, PolicyFillBlanksOnly))
	assert.Equal(t, &BudgetOverride{Amount: 550000, Basis: BasisMonthly}, MergeBudget(current, source, PolicyAdditive))
	assert.Equal(t, source, MergeBudget(nil, source, PolicyAdditive))
	assert.Equal(t, current, MergeBudget(current, nil, PolicyOverwrite))

	got := MergeBudget(current, source, PolicyOverwrite)
	got.Amount = 1
	assert.Equal(t, 300000.0, source.Amount)
}
