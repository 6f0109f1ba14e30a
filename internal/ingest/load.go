package ingest

import (
	"fmt"

	"github.com/becastil/costdash/internal/config"
	"github.com/becastil/costdash/internal/datasetread"
	"github.com/becastil/costdash/internal/model"
	"github.com/becastil/costdash/internal/normalize"
)

// Normalized holds the canonical output of one budget + claims file pair.
type Normalized struct {
	Budget         model.Result[model.BudgetRow]
	Claims         model.Result[model.ClaimsRow]
	BudgetRowsRead int64
	ClaimsRowsRead int64
	// BudgetRaw keeps the raw budget rows for enrollment extraction.
	BudgetRaw []model.Row
}

// Issues returns budget issues followed by claims issues.
func (n *Normalized) Issues() []model.Issue {
	out := make([]model.Issue, 0, len(n.Budget.Issues)+len(n.Claims.Issues))
	out = append(out, n.Budget.Issues...)
	return append(out, n.Claims.Issues...)
}

// Counts returns the number of error and warning issues across both files.
func (n *Normalized) Counts() (errs, warnings int) {
	bw, be := n.Budget.CountBySeverity()
	cw, ce := n.Claims.CountBySeverity()
	return be + ce, bw + cw
}

// Load reads both input files and normalizes them with the configured aliases.
// It never touches the database, so plan and export share it with ingest.
func Load(cfg *config.Config) (*Normalized, error) {
	budgetDS, err := datasetread.Open(cfg.BudgetPath, cfg.Sheet)
	if err != nil {
		return nil, fmt.Errorf("read budget file: %w", err)
	}
	claimsDS, err := datasetread.Open(cfg.ClaimsPath, cfg.Sheet)
	if err != nil {
		return nil, fmt.Errorf("read claims file: %w", err)
	}

	return &Normalized{
		Budget:         normalize.NormalizeBudget(budgetDS, normalize.WithExtraAliases(cfg.BudgetAliases)),
		Claims:         normalize.NormalizeClaims(claimsDS, normalize.WithExtraAliases(cfg.ClaimsAliases)),
		BudgetRowsRead: int64(len(budgetDS.Rows)),
		ClaimsRowsRead: int64(len(claimsDS.Rows)),
		BudgetRaw:      budgetDS.Rows,
	}, nil
}
