package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/becastil/costdash/internal/config"
	"github.com/becastil/costdash/internal/model"
)

// Pipeline phases reported in PipelineError.
const (
	PhasePreflight = "preflight"
	PhaseRead      = "read"
	PhaseValidate  = "validate"
	PhaseStage     = "stage"
	PhaseFinalize  = "finalize"
)

// ErrBlockingIssues is wrapped by the validate phase when error-severity
// issues stop an upload.
var ErrBlockingIssues = errors.New("upload has error-severity issues")

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full ingest pipeline: preflight → read/normalize → gate →
// stage → finalize. A failed stage removes whatever rows it copied.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (*model.IngestSummary, error) {
	totalStart := time.Now()

	// Phase 1: Preflight
	log.Info().Str("budget", cfg.BudgetPath).Str("claims", cfg.ClaimsPath).Msg("starting preflight")
	pf, err := Preflight(ctx, pool, log, cfg.BudgetPath, cfg.ClaimsPath, cfg.Force)
	if err != nil {
		return nil, &PipelineError{Phase: PhasePreflight, Err: err}
	}

	summary := &model.IngestSummary{
		UploadID:     pf.UploadID.String(),
		BudgetFile:   pf.BudgetPath,
		ClaimsFile:   pf.ClaimsPath,
		BudgetSHA256: pf.BudgetSHA256,
		ClaimsSHA256: pf.ClaimsSHA256,
	}

	if pf.AlreadyLoaded {
		log.Info().
			Str("upload_id", summary.UploadID).
			Msg("upload already loaded, skipping (use --force to re-import)")
		summary.AlreadyLoaded = true
		summary.DurationTotal = time.Since(totalStart)
		return summary, nil
	}

	// Phase 2: Read and normalize
	readStart := time.Now()
	n, err := Load(cfg)
	if err != nil {
		_ = UpdateStatus(ctx, pool, pf.UploadID, StatusFailed, err.Error())
		return summary, &PipelineError{Phase: PhaseRead, Err: err}
	}
	summary.DurationRead = time.Since(readStart)
	summary.BudgetRowsRead = n.BudgetRowsRead
	summary.ClaimsRowsRead = n.ClaimsRowsRead
	summary.Errors, summary.Warnings = n.Counts()

	log.Info().
		Int64("budget_rows", n.BudgetRowsRead).
		Int64("claims_rows", n.ClaimsRowsRead).
		Int("errors", summary.Errors).
		Int("warnings", summary.Warnings).
		Str("duration", summary.DurationRead.String()).
		Msg("normalization complete")

	// Phase 3: Gate on error issues
	if summary.Errors > 0 && !cfg.AllowErrors {
		gateErr := fmt.Errorf("%w: %d errors (use --allow-errors to stage anyway)", ErrBlockingIssues, summary.Errors)
		staged, err := StageIssues(ctx, pool, pf.UploadID, n.Issues())
		if err != nil {
			log.Warn().Err(err).Msg("could not record issues of rejected upload")
		}
		summary.IssuesStaged = staged
		_ = UpdateStatus(ctx, pool, pf.UploadID, StatusRejected, gateErr.Error())
		summary.DurationTotal = time.Since(totalStart)
		return summary, &PipelineError{Phase: PhaseValidate, Err: gateErr}
	}

	// Phase 4: Stage
	if err := UpdateStatus(ctx, pool, pf.UploadID, StatusStaging, ""); err != nil {
		return summary, &PipelineError{Phase: PhaseStage, Err: err}
	}

	st, err := Stage(ctx, pool, log, pf.UploadID, n)
	if err != nil {
		if cerr := Cleanup(ctx, pool, log, pf.UploadID); cerr != nil {
			log.Warn().Err(cerr).Msg("cleanup after failed stage failed")
		}
		_ = UpdateStatus(ctx, pool, pf.UploadID, StatusFailed, err.Error())
		return summary, &PipelineError{Phase: PhaseStage, Err: err}
	}
	summary.BudgetRowsStaged = st.BudgetRows
	summary.ClaimsRowsStaged = st.ClaimsRows
	summary.IssuesStaged = st.Issues
	summary.DurationCopy = st.Duration

	// Phase 5: Finalize
	if _, err := Finalize(ctx, pool, log, pf.UploadID, st); err != nil {
		_ = UpdateStatus(ctx, pool, pf.UploadID, StatusFailed, err.Error())
		return summary, &PipelineError{Phase: PhaseFinalize, Err: err}
	}

	summary.DurationTotal = time.Since(totalStart)
	log.Info().
		Str("upload_id", summary.UploadID).
		Int64("budget_rows_staged", summary.BudgetRowsStaged).
		Int64("claims_rows_staged", summary.ClaimsRowsStaged).
		Int64("issues_staged", summary.IssuesStaged).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("ingest pipeline complete")

	return summary, nil
}
