package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/becastil/costdash/internal/model"
)

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "stoplossreimb", NormalizeHeader("Stop-Loss Reimb."))
	assert.Equal(t, "stoplossreimb", NormalizeHeader("stop_loss_reimb"))
	assert.Equal(t, "icd10cmcode", NormalizeHeader(" ICD-10-CM Code "))
	assert.Equal(t, "", NormalizeHeader("#%"))
}

func TestResolveHeaders_FirstMatchWins(t *testing.T) {
	res := ResolveHeaders([]string{"Claim ID", "Claim Number", "Foo"}, ClaimsTable.Specs())

	require.Contains(t, res.Lookup, "claimId")
	assert.Equal(t, HeaderMatch{Header: "Claim ID", Alias: "Claim ID"}, res.Lookup["claimId"])
	assert.Equal(t, []string{"Foo"}, res.Unmapped)

	var dup, missing []model.Issue
	for _, is := range res.Issues {
		switch is.Type {
		case model.IssueDuplicateHeader:
			dup = append(dup, is)
		case model.IssueMissingRequiredField:
			missing = append(missing, is)
		}
	}
	require.Len(t, dup, 1)
	assert.Equal(t, model.SeverityWarning, dup[0].Severity)
	assert.Equal(t, "Claim Number", dup[0].Column)

	require.Len(t, missing, 1)
	assert.Equal(t, model.SeverityError, missing[0].Severity)
	assert.Equal(t, "serviceDate", missing[0].Column)
	assert.Nil(t, missing[0].RowIndex)

	for _, m := range res.Mappings {
		switch m.Field {
		case "claimId":
			require.NotNil(t, m.Header)
			assert.Equal(t, "Claim ID", *m.Header)
			assert.Equal(t, []string{"Claim Number"}, m.Conflicts)
		case "serviceDate":
			assert.Nil(t, m.Header)
			assert.Nil(t, m.Alias)
		}
	}
	assert.Len(t, res.Mappings, len(ClaimsTable.Fields))
}

func TestResolveHeaders_CanonicalNameIsAlias(t *testing.T) {
	res := ResolveHeaders([]string{"stopLossReimbursements"}, BudgetTable.Specs())
	require.Contains(t, res.Lookup, "stopLossReimbursements")
	assert.Equal(t, "stopLossReimbursements", res.Lookup["stopLossReimbursements"].Alias)
}

func TestBuildAliasIndex_Collision(t *testing.T) {
	_, err := buildAliasIndex([]FieldSpec{
		{Name: "a", Aliases: []string{"Total"}},
		{Name: "b", Aliases: []string{"total"}},
	})
	assert.Error(t, err)

	_, err = buildAliasIndex([]FieldSpec{
		{Name: "a", Aliases: []string{"Stop Loss", "Stop-Loss"}},
	})
	assert.NoError(t, err)
}

func TestMergeAliases(t *testing.T) {
	specs, issues := mergeAliases(BudgetTable.Specs(), map[string][]string{
		"budget": {"Plan Budget", "Medical"},
	})

	require.Len(t, issues, 1)
	assert.Equal(t, model.IssueDuplicateHeader, issues[0].Type)
	assert.Equal(t, "Medical", issues[0].Column)

	res := ResolveHeaders([]string{"Month", "Plan Budget"}, specs)
	require.Contains(t, res.Lookup, "budget")
	assert.Equal(t, "Plan Budget", res.Lookup["budget"].Header)

	for _, f := range BudgetTable.Fields {
		if f.Name == "budget" {
			assert.NotContains(t, f.Aliases, "Plan Budget", "built-in table must not change")
		}
	}
}
