package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/becastil/costdash/internal/config"
	"github.com/becastil/costdash/internal/model"
)

const (
	budgetCSV = "Month,Budget,Medical Claims,Employee Count,Member Count\n" +
		"Jan 2025,\"$100,000\",80000,100,240\n" +
		"Feb 2025,100000,abc,101,250\n" +
		",5,5,5,5\n"
	claimsCSV = "Claim ID,Service Date,Total Amount\n" +
		"C1,2025-01-15,120.50\n" +
		"C2,2025-02-03,(40.00)\n"
)

func writeInputs(t *testing.T, budget, claims string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		BudgetPath: filepath.Join(dir, "budget.csv"),
		ClaimsPath: filepath.Join(dir, "claims.csv"),
	}
	require.NoError(t, os.WriteFile(cfg.BudgetPath, []byte(budget), 0o644))
	require.NoError(t, os.WriteFile(cfg.ClaimsPath, []byte(claims), 0o644))
	return cfg
}

func TestLoad(t *testing.T) {
	cfg := writeInputs(t, budgetCSV, claimsCSV)

	n, err := Load(cfg)
	require.NoError(t, err)

	assert.Equal(t, int64(3), n.BudgetRowsRead)
	assert.Equal(t, int64(2), n.ClaimsRowsRead)
	require.Len(t, n.Budget.Rows, 2)
	assert.Equal(t, "2025-01", n.Budget.Rows[0].Month)
	assert.Equal(t, 100000.0, *n.Budget.Rows[0].Budget)
	assert.Nil(t, n.Budget.Rows[1].MedicalClaims)

	require.Len(t, n.Claims.Rows, 2)
	assert.Equal(t, "2025-02", n.Claims.Rows[1].ServiceMonth)
	assert.Equal(t, -40.0, *n.Claims.Rows[1].TotalAmount)

	errs, warnings := n.Counts()
	assert.Equal(t, 1, errs)
	assert.Equal(t, 1, warnings)

	issues := n.Issues()
	require.Len(t, issues, 2)
	types := []model.IssueType{issues[0].Type, issues[1].Type}
	assert.ElementsMatch(t, []model.IssueType{model.IssueInvalidNumber, model.IssueMissingRequiredField}, types)
	assert.Len(t, n.BudgetRaw, 3)
}

func TestLoad_ExtraAliases(t *testing.T) {
	cfg := writeInputs(t,
		"Period Label,Budget\nJan 2025,10\n",
		"Claim Ref,Service Date\nC1,2025-01-15\n",
	)
	cfg.BudgetAliases = map[string][]string{"month": {"Period Label"}}
	cfg.ClaimsAliases = map[string][]string{"claimId": {"Claim Ref"}}

	n, err := Load(cfg)
	require.NoError(t, err)
	require.Len(t, n.Budget.Rows, 1)
	assert.Equal(t, "2025-01", n.Budget.Rows[0].Month)
	require.Len(t, n.Claims.Rows, 1)
	assert.Equal(t, "C1", n.Claims.Rows[0].ClaimID)
	assert.Empty(t, n.Issues())
}

func TestLoad_MissingFile(t *testing.T) {
	cfg := writeInputs(t, budgetCSV, claimsCSV)
	cfg.ClaimsPath = filepath.Join(t.TempDir(), "missing.csv")

	_, err := Load(cfg)
	assert.ErrorContains(t, err, "read claims file")
}

func TestPipelineError(t *testing.T) {
	err := error(&PipelineError{Phase: PhaseValidate, Err: ErrBlockingIssues})
	assert.Equal(t, "validate: upload has error-severity issues", err.Error())
	assert.ErrorIs(t, err, ErrBlockingIssues)
}
