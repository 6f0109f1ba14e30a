package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/becastil/costdash/internal/db"
	"github.com/becastil/costdash/internal/model"
	embedsql "github.com/becastil/costdash/internal/sql"
)

const (
	schemaName     = "costs"
	copyBufferSize = 1024
)

// StageResult holds metrics from the staging phase.
type StageResult struct {
	BudgetRows int64
	ClaimsRows int64
	Issues     int64
	Duration   time.Duration
}

// Stage COPY-loads the canonical rows and every issue of an upload.
func Stage(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, uploadID uuid.UUID, n *Normalized) (*StageResult, error) {
	start := time.Now()

	budget := make([]*model.StagedBudgetRow, len(n.Budget.Rows))
	for i := range n.Budget.Rows {
		budget[i] = &model.StagedBudgetRow{UploadID: uploadID, RowNumber: int64(i + 1), Row: &n.Budget.Rows[i]}
	}
	claims := make([]*model.StagedClaimsRow, len(n.Claims.Rows))
	for i := range n.Claims.Rows {
		claims[i] = &model.StagedClaimsRow{UploadID: uploadID, RowNumber: int64(i + 1), Row: &n.Claims.Rows[i]}
	}

	budgetRows, err := copyRows(ctx, pool, "budget_rows", model.BudgetColumns(), budget)
	if err != nil {
		return nil, err
	}
	claimsRows, err := copyRows(ctx, pool, "claims_rows", model.ClaimsColumns(), claims)
	if err != nil {
		return nil, err
	}
	issues, err := StageIssues(ctx, pool, uploadID, n.Issues())
	if err != nil {
		return nil, err
	}

	dur := time.Since(start)
	log.Info().
		Str("upload_id", uploadID.String()).
		Int64("budget_rows", budgetRows).
		Int64("claims_rows", claimsRows).
		Int64("issues", issues).
		Str("duration", dur.String()).
		Msg("staging complete")

	return &StageResult{
		BudgetRows: budgetRows,
		ClaimsRows: claimsRows,
		Issues:     issues,
		Duration:   dur,
	}, nil
}

// StageIssues COPY-loads issues alone. Rejected uploads keep their issues so
// they can be inspected.
func StageIssues(ctx context.Context, pool *pgxpool.Pool, uploadID uuid.UUID, issues []model.Issue) (int64, error) {
	staged := make([]*model.StagedIssue, len(issues))
	for i := range issues {
		staged[i] = &model.StagedIssue{UploadID: uploadID, Issue: &issues[i]}
	}
	return copyRows(ctx, pool, "issues", model.IssueColumns(), staged)
}

// copyRows feeds rows to COPY from a producer goroutine through a
// channel-backed CopyFromSource.
func copyRows[T db.CopyRow](ctx context.Context, pool *pgxpool.Pool, table string, columns []string, rows []T) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan T, copyBufferSize)
	errCh := make(chan error, 1)

	go func() {
		defer close(ch)
		for _, r := range rows {
			select {
			case ch <- r:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
		errCh <- nil
	}()

	copied, err := pool.CopyFrom(ctx, pgx.Identifier{schemaName, table}, columns, db.NewChannelSource(ctx, ch))
	if err != nil {
		// Unblock the producer before waiting on it.
		cancel()
		<-errCh
		return 0, fmt.Errorf("copy %s: %w", table, err)
	}
	if prodErr := <-errCh; prodErr != nil {
		return 0, fmt.Errorf("copy %s producer: %w", table, prodErr)
	}
	return copied, nil
}

// UpdateStatus sets the upload status. An empty message clears error_message.
func UpdateStatus(ctx context.Context, pool *pgxpool.Pool, uploadID uuid.UUID, status, message string) error {
	var msg *string
	if message != "" {
		msg = &message
	}
	_, err := pool.Exec(ctx, embedsql.UpdateUploadStatus, uploadID, status, msg)
	return err
}
