package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/becastil/costdash/internal/normalize"
	embedsql "github.com/becastil/costdash/internal/sql"
)

// Upload statuses stored in costs.uploads.
const (
	StatusPending  = "pending"
	StatusStaging  = "staging"
	StatusLoaded   = "loaded"
	StatusRejected = "rejected"
	StatusFailed   = "failed"
)

// PreflightResult holds all context resolved during the preflight phase.
type PreflightResult struct {
	BudgetPath   string
	ClaimsPath   string
	BudgetSHA256 string
	ClaimsSHA256 string
	// UploadID identifies the budget/claims pair. A re-run of the same pair
	// reuses the id registered the first time.
	UploadID uuid.UUID
	// PriorStatus is the status found for an existing registration, empty for
	// a new one.
	PriorStatus string
	// AlreadyLoaded is true when the pair is already loaded and force mode is
	// off; the pipeline stops after preflight.
	AlreadyLoaded bool
}

// Preflight hashes both files and registers the upload. An earlier, unfinished
// or forced registration has its rows removed so the pair can be staged again.
func Preflight(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, budgetPath, claimsPath string, force bool) (*PreflightResult, error) {
	start := time.Now()

	budgetSHA, err := normalize.FileHash(budgetPath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash budget: %w", err)
	}
	claimsSHA, err := normalize.FileHash(claimsPath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash claims: %w", err)
	}

	proposed := uuid.New()
	var (
		uploadID uuid.UUID
		status   string
	)
	err = pool.QueryRow(ctx, embedsql.RegisterUpload,
		proposed,
		filepath.Base(budgetPath), budgetSHA,
		filepath.Base(claimsPath), claimsSHA,
	).Scan(&uploadID, &status)
	if err != nil {
		return nil, fmt.Errorf("preflight register upload: %w", err)
	}

	pf := &PreflightResult{
		BudgetPath:   budgetPath,
		ClaimsPath:   claimsPath,
		BudgetSHA256: budgetSHA,
		ClaimsSHA256: claimsSHA,
		UploadID:     uploadID,
	}
	if uploadID != proposed {
		pf.PriorStatus = status
	}

	log.Info().
		Str("upload_id", uploadID.String()).
		Str("budget_sha256", budgetSHA).
		Str("claims_sha256", claimsSHA).
		Str("prior_status", pf.PriorStatus).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	switch {
	case pf.PriorStatus == "":
		return pf, nil
	case pf.PriorStatus == StatusLoaded && !force:
		pf.AlreadyLoaded = true
		return pf, nil
	}

	if err := Cleanup(ctx, pool, log, uploadID); err != nil {
		return nil, fmt.Errorf("preflight clear previous rows: %w", err)
	}
	if err := UpdateStatus(ctx, pool, uploadID, StatusPending, ""); err != nil {
		return nil, fmt.Errorf("preflight reset status: %w", err)
	}
	return pf, nil
}
